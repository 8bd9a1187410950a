package delta

import (
	"fmt"
	"sort"

	"github.com/brunoga/delta/internal/core"
)

// Kind identifies the variant held by a Change.
type Kind uint8

const (
	// KindUnchanged means "no difference". It is the zero Change.
	KindUnchanged Kind = iota
	// KindDeleted removes the key or index the change is stored under.
	KindDeleted
	// KindReplace makes the affected slot exactly the carried value.
	KindReplace
	// KindObject holds per-key changes of a map.
	KindObject
	// KindArray holds positional operations on a list.
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindUnchanged:
		return "unchanged"
	case KindDeleted:
		return "deleted"
	case KindReplace:
		return "replace"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Op is the kind of an array operation key.
type Op uint8

const (
	// OpSet addresses an existing index: its payload deletes, replaces or
	// recursively modifies the item.
	OpSet Op = iota
	// OpInsert inserts its payload before the index.
	OpInsert
)

// Index is the key of an array operation.
//
// Set keys address the list before the change is applied, whether they delete
// or modify the item. Insert keys address the list after the change is
// applied. Apply processes deletions from the highest index down, then
// insertions from the lowest index up, then sets from the lowest index up,
// locating each set key's original item wherever the earlier operations moved
// it. A set key past the end of the original list addresses the resulting
// list and extends it.
type Index struct {
	Op Op
	N  int
}

// Set returns the set/delete key for index n.
func Set(n int) Index { return Index{Op: OpSet, N: n} }

// Insert returns the insert key for index n.
func Insert(n int) Index { return Index{Op: OpInsert, N: n} }

// String renders the key as a path segment: "3" or "+3".
func (i Index) String() string {
	if i.Op == OpInsert {
		return fmt.Sprintf("+%d", i.N)
	}
	return fmt.Sprintf("%d", i.N)
}

// ParseIndex decodes a path segment produced by Index.String.
func ParseIndex(seg string) (Index, bool) {
	n, insert, ok := core.ParseIndexSegment(seg)
	if !ok {
		return Index{}, false
	}
	if insert {
		return Insert(n), true
	}
	return Set(n), true
}

// Change is the delta that transforms one value into another. The zero Change
// means "no difference".
//
// Changes are immutable: constructors copy the maps they are given and
// accessors must not be used to mutate the returned maps.
type Change struct {
	kind   Kind
	value  any
	fields map[string]Change
	ops    map[Index]Change
}

// Delete returns the change that removes a key or index.
func Delete() Change {
	return Change{kind: KindDeleted}
}

// Replace returns the change that sets a slot to v.
func Replace(v any) Change {
	return Change{kind: KindReplace, value: v}
}

// Object returns a change holding per-key changes. Unchanged entries are
// dropped. An empty object change is returned as unchanged.
func Object(fields map[string]Change) Change {
	c := Change{kind: KindObject, fields: make(map[string]Change, len(fields))}
	for k, f := range fields {
		if f.kind != KindUnchanged {
			c.fields[k] = f
		}
	}
	if len(c.fields) == 0 {
		return Change{}
	}
	return c
}

// Array returns a change holding positional operations. Unchanged entries are
// dropped. An empty array change is returned as unchanged.
func Array(ops map[Index]Change) Change {
	c := Change{kind: KindArray, ops: make(map[Index]Change, len(ops))}
	for k, op := range ops {
		if op.kind != KindUnchanged {
			c.ops[k] = op
		}
	}
	if len(c.ops) == 0 {
		return Change{}
	}
	return c
}

// Kind returns the variant held by c.
func (c Change) Kind() Kind { return c.kind }

// IsUnchanged reports whether c means "no difference".
func (c Change) IsUnchanged() bool { return c.kind == KindUnchanged }

// IsDeleted reports whether c is the deleted marker.
func (c Change) IsDeleted() bool { return c.kind == KindDeleted }

// Value returns the payload of a Replace change and nil otherwise.
func (c Change) Value() any { return c.value }

// Fields returns the per-key changes of an object change. The map must not be
// modified.
func (c Change) Fields() map[string]Change { return c.fields }

// Ops returns the operations of an array change. The map must not be
// modified.
func (c Change) Ops() map[Index]Change { return c.ops }

// Field returns the change stored under key in an object change.
func (c Change) Field(key string) (Change, bool) {
	f, ok := c.fields[key]
	return f, ok
}

// Op returns the operation stored under idx in an array change.
func (c Change) Op(idx Index) (Change, bool) {
	op, ok := c.ops[idx]
	return op, ok
}

// Keys returns the sorted keys of an object change, or the sorted key segments
// of an array change.
func (c Change) Keys() []string {
	switch c.kind {
	case KindObject:
		keys := make([]string, 0, len(c.fields))
		for k := range c.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	case KindArray:
		idxs := c.sortedOps()
		keys := make([]string, len(idxs))
		for i, idx := range idxs {
			keys[i] = idx.String()
		}
		return keys
	}
	return nil
}

// sortedOps orders array keys by index, set keys before insert keys.
func (c Change) sortedOps() []Index {
	idxs := make([]Index, 0, len(c.ops))
	for idx := range c.ops {
		idxs = append(idxs, idx)
	}
	sort.Slice(idxs, func(i, j int) bool {
		if idxs[i].N != idxs[j].N {
			return idxs[i].N < idxs[j].N
		}
		return idxs[i].Op < idxs[j].Op
	})
	return idxs
}

// child returns the sub-change stored under a path segment.
func (c Change) child(seg string) (Change, bool) {
	switch c.kind {
	case KindObject:
		return c.Field(seg)
	case KindArray:
		idx, ok := ParseIndex(seg)
		if !ok {
			return Change{}, false
		}
		return c.Op(idx)
	}
	return Change{}, false
}

// Equal reports whether c and other describe the same delta.
func (c Change) Equal(other Change) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case KindReplace:
		return core.Equal(c.value, other.value)
	case KindObject:
		if len(c.fields) != len(other.fields) {
			return false
		}
		for k, f := range c.fields {
			o, ok := other.fields[k]
			if !ok || !f.Equal(o) {
				return false
			}
		}
	case KindArray:
		if len(c.ops) != len(other.ops) {
			return false
		}
		for k, op := range c.ops {
			o, ok := other.ops[k]
			if !ok || !op.Equal(o) {
				return false
			}
		}
	}
	return true
}
