package delta

import (
	"fmt"
	"slices"
	"sort"

	"github.com/brunoga/delta/internal/core"
)

// Apply applies c to value and returns the new value. value itself is never
// modified and the result never aliases c.
//
// Apply is total: a change whose shape does not fit value is coerced. An
// object change applied to a non-map builds a new map, an array change applied
// to a non-list starts from an empty list, and out of range deletions are
// ignored. Use ApplyChecked to have such changes rejected instead.
func Apply(value any, c Change) any {
	p := &patcher{}
	return p.apply(value, c)
}

// ApplyChecked is the strict form of Apply. It returns a *PatchError (which
// wraps ErrMalformedPatch) for the first entry of c that does not fit value.
func ApplyChecked(value any, c Change) (any, error) {
	p := &patcher{strict: true, pathStack: make([]string, 0, 8)}
	out := p.apply(value, c)
	if p.err != nil {
		return nil, p.err
	}
	return out, nil
}

type patcher struct {
	strict    bool
	pathStack []string
	err       error
}

func (p *patcher) push(seg string) {
	if p.pathStack != nil {
		p.pathStack = append(p.pathStack, seg)
	}
}

func (p *patcher) pop() {
	if p.pathStack != nil {
		p.pathStack = p.pathStack[:len(p.pathStack)-1]
	}
}

func (p *patcher) fail(format string, args ...any) {
	if !p.strict || p.err != nil {
		return
	}
	p.err = &PatchError{
		Path:   core.FormatPath(p.pathStack),
		Reason: fmt.Sprintf(format, args...),
	}
}

func (p *patcher) apply(value any, c Change) any {
	switch c.kind {
	case KindUnchanged:
		return value
	case KindDeleted:
		return nil
	case KindObject:
		return p.applyObject(value, c)
	case KindArray:
		return p.applyArray(value, c)
	}
	v, _ := Materialize(c)
	return v
}

func (p *patcher) applyObject(value any, c Change) any {
	base, ok := value.(map[string]any)
	if !ok && value != nil {
		p.fail("object change applied to %s", core.KindOf(value))
	}

	out := make(map[string]any, len(base)+len(c.fields))
	for k, v := range base {
		out[k] = v
	}
	for _, k := range c.Keys() {
		f := c.fields[k]
		if f.IsDeleted() {
			delete(out, k)
			continue
		}
		p.push(k)
		out[k] = p.apply(base[k], f)
		p.pop()
	}
	return out
}

func (p *patcher) applyArray(value any, c Change) any {
	list, ok := value.([]any)
	if !ok && value != nil {
		p.fail("array change applied to %s", core.KindOf(value))
	}

	n := len(list)
	items := make([]any, n)
	copy(items, list)
	origin := make([]int, n)
	for i := range origin {
		origin[i] = i
	}

	var dels, inss, sets []Index
	for idx, op := range c.ops {
		switch {
		case idx.Op == OpInsert:
			inss = append(inss, idx)
		case op.IsDeleted():
			dels = append(dels, idx)
		default:
			sets = append(sets, idx)
		}
	}

	// Deletions from the highest index down, so no deletion shifts one still
	// to be processed.
	sort.Slice(dels, func(i, j int) bool { return dels[i].N > dels[j].N })
	for _, idx := range dels {
		if idx.N < 0 || idx.N >= n {
			p.push(idx.String())
			p.fail("delete index %d out of range [0, %d)", idx.N, n)
			p.pop()
			continue
		}
		items = slices.Delete(items, idx.N, idx.N+1)
		origin = slices.Delete(origin, idx.N, idx.N+1)
	}

	// Insertions from the lowest index up; each lands at its final position.
	sort.Slice(inss, func(i, j int) bool { return inss[i].N < inss[j].N })
	for _, idx := range inss {
		op := c.ops[idx]
		p.push(idx.String())
		pos := idx.N
		if pos < 0 || pos > len(items) {
			p.fail("insert index %d out of range [0, %d]", idx.N, len(items))
			pos = max(0, min(pos, len(items)))
		}
		if op.kind != KindReplace {
			p.fail("insert payload must be a value, got %s", op.kind)
		}
		items = slices.Insert(items, pos, p.apply(nil, op))
		origin = slices.Insert(origin, pos, -1)
		p.pop()
	}

	// Sets last, each on the item originally at its index.
	if len(sets) == 0 {
		return items
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].N < sets[j].N })
	posOf := make(map[int]int, len(origin))
	for pos, o := range origin {
		if o >= 0 {
			posOf[o] = pos
		}
	}
	for _, idx := range sets {
		if idx.N < 0 {
			p.push(idx.String())
			p.fail("negative index %d", idx.N)
			p.pop()
			continue
		}
		pos := idx.N
		if idx.N < n {
			pos = posOf[idx.N]
		}
		for pos >= len(items) {
			items = append(items, nil)
		}
		p.push(idx.String())
		items[pos] = p.apply(items[pos], c.ops[idx])
		p.pop()
	}
	return items
}

// Materialize converts c into a plain value without a base value. Replace
// changes yield a copy of their payload and object changes yield a map of
// their materializable entries, dropping deletions. Array changes cannot be
// reconstructed without the original list; for them (and for unchanged and
// deleted changes) Materialize reports false.
func Materialize(c Change) (any, bool) {
	switch c.kind {
	case KindReplace:
		return core.Copy(c.value), true
	case KindObject:
		out := make(map[string]any, len(c.fields))
		for k, f := range c.fields {
			if v, ok := Materialize(f); ok {
				out[k] = v
			}
		}
		return out, true
	}
	return nil, false
}
