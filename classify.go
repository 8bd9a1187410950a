package delta

import (
	"sort"

	"github.com/brunoga/delta/internal/core"
)

// Paths returns every leaf path touched by c in dotted notation, sorted.
//
// Object keys are descended, and so are the keys of map payloads carried by
// Replace changes. Lists, primitives and deletions are leaves. An empty map
// payload (an intentional empty-object assignment) yields one path ending at
// that map. Array operations contribute "[N]" and "[+N]" segments. A
// top-level replacement yields the root path "".
func Paths(c Change) []string {
	var paths []string
	collectPaths(c, "", &paths)
	sort.Strings(paths)
	return paths
}

func collectPaths(c Change, path string, out *[]string) {
	switch c.kind {
	case KindUnchanged:
		return
	case KindObject:
		for k, f := range c.fields {
			collectPaths(f, core.JoinPath(path, k), out)
		}
		return
	case KindArray:
		for idx, op := range c.ops {
			collectPaths(op, core.JoinPath(path, idx.String()), out)
		}
		return
	case KindReplace:
		if m, ok := c.value.(map[string]any); ok && len(m) > 0 {
			for k, v := range m {
				collectPaths(Replace(v), core.JoinPath(path, k), out)
			}
			return
		}
	}
	*out = append(*out, path)
}

// Overlap reports whether two dotted paths touch the same sub-tree: one is a
// prefix of, or equal to, the other.
func Overlap(a, b string) bool {
	return core.Overlap(core.ParsePath(a), core.ParsePath(b))
}

// Classification splits the paths of two changes.
type Classification struct {
	// Conflicts are paths of either change overlapping a path of the other.
	Conflicts []string
	// Differences are paths safe to apply independently.
	Differences []string
}

// Classify partitions the paths of x and y into conflicts and differences.
// Each path is listed once, in sorted order.
func Classify(x, y Change) Classification {
	px, py := parsedPaths(x), parsedPaths(y)

	conflicts := make(map[string]bool)
	differences := make(map[string]bool)
	classify := func(from, against []parsedPath) {
		for _, p := range from {
			if overlapsAny(p, against) {
				conflicts[p.path] = true
			} else {
				differences[p.path] = true
			}
		}
	}
	classify(px, py)
	classify(py, px)

	var res Classification
	for p := range conflicts {
		res.Conflicts = append(res.Conflicts, p)
	}
	for p := range differences {
		if !conflicts[p] {
			res.Differences = append(res.Differences, p)
		}
	}
	sort.Strings(res.Conflicts)
	sort.Strings(res.Differences)
	return res
}

// HasConflict reports whether any path of x overlaps any path of y.
func HasConflict(x, y Change) bool {
	px, py := parsedPaths(x), parsedPaths(y)
	for _, p := range px {
		if overlapsAny(p, py) {
			return true
		}
	}
	return false
}

// Resolution is a change split into the part conflicting with another change
// and the part independent of it.
type Resolution struct {
	Conflicts   Change
	Differences Change
}

// ResolveConflicts partitions y (not x) into the sub-change whose paths
// overlap a path of x and the sub-change whose paths do not.
func ResolveConflicts(x, y Change) Resolution {
	px, py := parsedPaths(x), parsedPaths(y)

	var conflicts, differences []string
	for _, p := range py {
		if overlapsAny(p, px) {
			conflicts = append(conflicts, p.path)
		} else {
			differences = append(differences, p.path)
		}
	}

	res := Resolution{Conflicts: y, Differences: y}
	if len(differences) > 0 {
		res.Conflicts = Exclude(y, differences...)
	}
	if len(conflicts) > 0 {
		res.Differences = Exclude(y, conflicts...)
	}
	return res
}

// Comparison is the result of a top-level keyed comparison of two changes.
type Comparison struct {
	// Similarities holds entries equal in both changes.
	Similarities Change
	// Conflicts holds entries present in both with different values; the
	// second change's entry wins.
	Conflicts Change
	// Differences holds entries present in only one change.
	Differences Change
}

// Compare compares x and y key by key at the top level. Object changes are
// compared per key and array changes per operation key; any other pair is
// compared as a whole.
func Compare(x, y Change) Comparison {
	switch {
	case x.kind == KindObject && y.kind == KindObject:
		sim, conf, diff := compareEntries(x.fields, y.fields)
		return Comparison{Object(sim), Object(conf), Object(diff)}
	case x.kind == KindArray && y.kind == KindArray:
		sim, conf, diff := compareEntries(x.ops, y.ops)
		return Comparison{Array(sim), Array(conf), Array(diff)}
	case x.IsUnchanged():
		return Comparison{Differences: y}
	case y.IsUnchanged():
		return Comparison{Differences: x}
	case x.Equal(y):
		return Comparison{Similarities: y}
	}
	return Comparison{Conflicts: y}
}

func compareEntries[K comparable](x, y map[K]Change) (sim, conf, diff map[K]Change) {
	sim = make(map[K]Change)
	conf = make(map[K]Change)
	diff = make(map[K]Change)
	for k, vx := range x {
		vy, ok := y[k]
		switch {
		case !ok:
			diff[k] = vx
		case vx.Equal(vy):
			sim[k] = vy
		default:
			conf[k] = vy
		}
	}
	for k, vy := range y {
		if _, ok := x[k]; !ok {
			diff[k] = vy
		}
	}
	return sim, conf, diff
}

type parsedPath struct {
	path string
	segs []string
}

func parsedPaths(c Change) []parsedPath {
	paths := Paths(c)
	out := make([]parsedPath, len(paths))
	for i, p := range paths {
		out[i] = parsedPath{path: p, segs: core.ParsePath(p)}
	}
	return out
}

func overlapsAny(p parsedPath, against []parsedPath) bool {
	for _, o := range against {
		if core.Overlap(p.segs, o.segs) {
			return true
		}
	}
	return false
}
