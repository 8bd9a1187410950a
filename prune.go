package delta

import "github.com/brunoga/delta/internal/core"

// Exclude returns c with the change at every given path removed, including
// paths that reach into the map payload of a Replace change.
//
// Containers left empty by the removal are removed as well, up to the root,
// unless they were already empty in c. Deletion markers are leaves and are
// never collapsed. When everything is pruned the result is unchanged. c is
// not modified.
func Exclude(c Change, paths ...string) Change {
	if len(paths) == 0 {
		return c
	}
	pruned := c
	for _, p := range paths {
		pruned = removePath(pruned, core.ParsePath(p))
	}
	return collapse(pruned, c)
}

func removePath(c Change, segs []string) Change {
	if len(segs) == 0 {
		return Change{}
	}
	seg, rest := segs[0], segs[1:]

	switch c.kind {
	case KindObject:
		child, ok := c.fields[seg]
		if !ok {
			return c
		}
		fields := make(map[string]Change, len(c.fields))
		for k, f := range c.fields {
			fields[k] = f
		}
		if next := removePath(child, rest); next.IsUnchanged() {
			delete(fields, seg)
		} else {
			fields[seg] = next
		}
		return Change{kind: KindObject, fields: fields}

	case KindArray:
		idx, ok := ParseIndex(seg)
		if !ok {
			return c
		}
		child, ok := c.ops[idx]
		if !ok {
			return c
		}
		ops := make(map[Index]Change, len(c.ops))
		for k, op := range c.ops {
			ops[k] = op
		}
		if next := removePath(child, rest); next.IsUnchanged() {
			delete(ops, idx)
		} else {
			ops[idx] = next
		}
		return Change{kind: KindArray, ops: ops}

	case KindReplace:
		m, ok := c.value.(map[string]any)
		if !ok {
			return c
		}
		v, ok := m[seg]
		if !ok {
			return c
		}
		out := make(map[string]any, len(m))
		for k, mv := range m {
			out[k] = mv
		}
		if next := removePath(Replace(v), rest); next.IsUnchanged() {
			delete(out, seg)
		} else {
			out[seg] = next.value
		}
		return Replace(out)
	}

	// Deletions and non-map replacements are leaves: nothing below them can
	// be addressed.
	return c
}

// collapse drops containers emptied by pruning. orig is the change before
// pruning, used to keep containers that were empty to begin with.
func collapse(c, orig Change) Change {
	switch c.kind {
	case KindObject:
		fields := make(map[string]Change, len(c.fields))
		for k, f := range c.fields {
			o, _ := orig.child(k)
			if f = collapse(f, o); !f.IsUnchanged() {
				fields[k] = f
			}
		}
		return Object(fields)

	case KindArray:
		ops := make(map[Index]Change, len(c.ops))
		for idx, op := range c.ops {
			o, _ := orig.Op(idx)
			if op = collapse(op, o); !op.IsUnchanged() {
				ops[idx] = op
			}
		}
		return Array(ops)

	case KindReplace:
		m, ok := c.value.(map[string]any)
		if !ok {
			return c
		}
		om, _ := orig.value.(map[string]any)
		out, keep := collapseMap(m, om)
		if !keep {
			return Change{}
		}
		return Replace(out)
	}
	return c
}

// collapseMap removes nested maps emptied by pruning. It reports false when m
// itself ends up empty while orig was not.
func collapseMap(m, orig map[string]any) (map[string]any, bool) {
	if len(m) == 0 {
		return m, len(orig) == 0
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		sub, ok := v.(map[string]any)
		if !ok {
			out[k] = v
			continue
		}
		osub, _ := orig[k].(map[string]any)
		if sub, keep := collapseMap(sub, osub); keep {
			out[k] = sub
		}
	}
	if len(out) == 0 && len(orig) != 0 {
		return nil, false
	}
	return out, true
}
