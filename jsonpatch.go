package delta

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

type jsonPatchOp struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// ToJSONPatch renders c as an RFC 6902 JSON Patch document against base.
// Applying the document to base with any conforming implementation yields
// Apply(base, c). The change must fit base as ApplyChecked requires.
func ToJSONPatch(base any, c Change) ([]byte, error) {
	if _, err := ApplyChecked(base, c); err != nil {
		return nil, err
	}
	g := &jsonPatcher{}
	if err := g.gen(base, c, "", true); err != nil {
		return nil, err
	}
	if g.ops == nil {
		g.ops = []jsonPatchOp{}
	}
	return json.Marshal(g.ops)
}

type jsonPatcher struct {
	ops []jsonPatchOp
}

func (g *jsonPatcher) emit(op, ptr string, v any, withValue bool) error {
	o := jsonPatchOp{Op: op, Path: ptr}
	if withValue {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding value at %q: %w", ptr, err)
		}
		o.Value = data
	}
	g.ops = append(g.ops, o)
	return nil
}

// set emits the operation that makes ptr hold v.
func (g *jsonPatcher) set(ptr string, v any, exists bool) error {
	if exists {
		return g.emit("replace", ptr, v, true)
	}
	return g.emit("add", ptr, v, true)
}

func (g *jsonPatcher) gen(value any, c Change, ptr string, exists bool) error {
	switch c.kind {
	case KindUnchanged:
		return nil
	case KindObject:
		if base, ok := value.(map[string]any); ok && exists {
			return g.genObject(base, c, ptr)
		}
	case KindArray:
		if list, ok := value.([]any); ok && exists {
			return g.genArray(list, c, ptr)
		}
	}
	return g.set(ptr, Apply(value, c), exists)
}

func (g *jsonPatcher) genObject(base map[string]any, c Change, ptr string) error {
	for _, k := range c.Keys() {
		f := c.fields[k]
		child := ptr + "/" + escapePointer(k)
		v, exists := base[k]
		if f.IsDeleted() {
			if exists {
				if err := g.emit("remove", child, nil, false); err != nil {
					return err
				}
			}
			continue
		}
		if err := g.gen(v, f, child, exists); err != nil {
			return err
		}
	}
	return nil
}

func (g *jsonPatcher) genArray(list []any, c Change, ptr string) error {
	n := len(list)
	items := slices.Clone(list)
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

	sort.Slice(dels, func(i, j int) bool { return dels[i].N > dels[j].N })
	for _, idx := range dels {
		if err := g.emit("remove", ptr+"/"+strconv.Itoa(idx.N), nil, false); err != nil {
			return err
		}
		items = slices.Delete(items, idx.N, idx.N+1)
		origin = slices.Delete(origin, idx.N, idx.N+1)
	}

	sort.Slice(inss, func(i, j int) bool { return inss[i].N < inss[j].N })
	for _, idx := range inss {
		v := Apply(nil, c.ops[idx])
		if err := g.emit("add", ptr+"/"+strconv.Itoa(idx.N), v, true); err != nil {
			return err
		}
		items = slices.Insert(items, idx.N, v)
		origin = slices.Insert(origin, idx.N, -1)
	}

	sort.Slice(sets, func(i, j int) bool { return sets[i].N < sets[j].N })
	posOf := make(map[int]int, len(origin))
	for pos, o := range origin {
		if o >= 0 {
			posOf[o] = pos
		}
	}
	for _, idx := range sets {
		pos := idx.N
		if idx.N < n {
			pos = posOf[idx.N]
		}
		for pos >= len(items) {
			if err := g.emit("add", ptr+"/-", nil, true); err != nil {
				return err
			}
			items = append(items, nil)
		}
		child := ptr + "/" + strconv.Itoa(pos)
		if err := g.gen(items[pos], c.ops[idx], child, true); err != nil {
			return err
		}
		items[pos] = Apply(items[pos], c.ops[idx])
	}
	return nil
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// escapePointer escapes a key for use as a JSON Pointer reference token.
func escapePointer(key string) string {
	return pointerEscaper.Replace(key)
}
