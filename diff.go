package delta

import (
	"strconv"

	"github.com/brunoga/delta/internal/core"
)

// DiffOption allows configuring the behavior of the Diff function.
type DiffOption interface {
	applyDiff(*diffConfig)
}

type diffConfig struct {
	ignoredPaths map[string]bool
}

// Diff returns the Change required to turn a into b, or the unchanged Change
// if they are deeply equal.
//
// Maps are diffed per key and lists with a greedy single-lookahead matcher
// that captures localized inserts and deletes; anything else that differs is
// replaced wholesale. Values in the returned Change never alias b.
func Diff(a, b any, opts ...DiffOption) Change {
	config := &diffConfig{}
	for _, opt := range opts {
		opt.applyDiff(config)
	}

	d := &differ{config: config}
	if len(config.ignoredPaths) > 0 {
		d.pathStack = make([]string, 0, 8)
	}
	return d.diff(a, b)
}

type differ struct {
	config    *diffConfig
	pathStack []string
}

func (d *differ) push(seg string) {
	if d.pathStack != nil {
		d.pathStack = append(d.pathStack, seg)
	}
}

func (d *differ) pop() {
	if d.pathStack != nil {
		d.pathStack = d.pathStack[:len(d.pathStack)-1]
	}
}

func (d *differ) ignored() bool {
	if d.pathStack == nil {
		return false
	}
	return d.config.ignoredPaths[core.FormatPath(d.pathStack)]
}

func (d *differ) diff(a, b any) Change {
	if d.ignored() {
		return Change{}
	}
	if core.Equal(a, b) {
		return Change{}
	}

	ka, kb := core.KindOf(a), core.KindOf(b)
	if ka == core.KindNull || kb == core.KindNull || ka != kb {
		return Replace(core.Copy(b))
	}

	switch ka {
	case core.KindList:
		return d.diffList(a.([]any), b.([]any))
	case core.KindMap:
		return d.diffMap(a.(map[string]any), b.(map[string]any))
	}
	return Replace(b)
}

func (d *differ) diffMap(a, b map[string]any) Change {
	fields := make(map[string]Change)
	for k, va := range a {
		d.push(k)
		vb, ok := b[k]
		switch {
		case d.ignored():
		case !ok:
			fields[k] = Delete()
		default:
			if c := d.diff(va, vb); !c.IsUnchanged() {
				fields[k] = c
			}
		}
		d.pop()
	}
	for k, vb := range b {
		if _, ok := a[k]; ok {
			continue
		}
		d.push(k)
		if !d.ignored() {
			fields[k] = Replace(core.Copy(vb))
		}
		d.pop()
	}
	return Object(fields)
}

// diffList walks both lists with two pointers. On a mismatch it first looks
// ahead in a for b[j] (a run of deletions), then ahead in b for a[i] (a run of
// insertions), and otherwise treats the pair as a modification. The first
// match found wins.
func (d *differ) diffList(a, b []any) Change {
	ops := make(map[Index]Change)

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if core.Equal(a[i], b[j]) {
			i++
			j++
			continue
		}

		if k := indexOf(a, b[j], i+1); k >= 0 {
			for ; i < k; i++ {
				d.deleteAt(ops, i)
			}
			continue
		}

		if k := indexOf(b, a[i], j+1); k >= 0 {
			for ; j < k; j++ {
				ops[Insert(j)] = Replace(core.Copy(b[j]))
			}
			continue
		}

		d.push(strconv.Itoa(i))
		if c := d.diff(a[i], b[j]); !c.IsUnchanged() {
			ops[Set(i)] = c
		}
		d.pop()
		i++
		j++
	}

	for ; i < len(a); i++ {
		d.deleteAt(ops, i)
	}
	for ; j < len(b); j++ {
		ops[Insert(j)] = Replace(core.Copy(b[j]))
	}

	return Array(ops)
}

func (d *differ) deleteAt(ops map[Index]Change, i int) {
	d.push(strconv.Itoa(i))
	if !d.ignored() {
		ops[Set(i)] = Delete()
	}
	d.pop()
}

func indexOf(list []any, v any, from int) int {
	for k := from; k < len(list); k++ {
		if core.Equal(list[k], v) {
			return k
		}
	}
	return -1
}
