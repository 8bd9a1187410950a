package delta

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var (
	changeComparer = cmp.Comparer(func(a, b Change) bool { return a.Equal(b) })
	valueOpts      = cmp.Options{cmpopts.EquateEmpty()}
)

func TestDiff_Unchanged(t *testing.T) {
	tests := []struct {
		name string
		a, b any
	}{
		{"Nil", nil, nil},
		{"Int", 1, 1},
		{"Numeric", 1, 1.0},
		{"String", "x", "x"},
		{"Nested", map[string]any{"a": []any{1, map[string]any{"b": true}}}, map[string]any{"a": []any{1, map[string]any{"b": true}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := Diff(tt.a, tt.b); !c.IsUnchanged() {
				t.Errorf("Diff(%v, %v) = %v, want unchanged", tt.a, tt.b, c)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want Change
	}{
		{
			name: "Primitive",
			a:    1,
			b:    2,
			want: Replace(2),
		},
		{
			name: "FromNil",
			a:    nil,
			b:    map[string]any{"a": 1},
			want: Replace(map[string]any{"a": 1}),
		},
		{
			name: "KindMismatch",
			a:    []any{1},
			b:    map[string]any{"a": 1},
			want: Replace(map[string]any{"a": 1}),
		},
		{
			name: "MapKeys",
			a:    map[string]any{"a": 1, "b": 2},
			b:    map[string]any{"a": 1, "c": 3},
			want: Object(map[string]Change{"b": Delete(), "c": Replace(3)}),
		},
		{
			name: "NestedMap",
			a:    map[string]any{"a": map[string]any{"b": 1, "c": 1}},
			b:    map[string]any{"a": map[string]any{"b": 2, "c": 1}},
			want: Object(map[string]Change{
				"a": Object(map[string]Change{"b": Replace(2)}),
			}),
		},
		{
			name: "ListDelete",
			a:    []any{1, 2, 3},
			b:    []any{1, 3},
			want: Array(map[Index]Change{Set(1): Delete()}),
		},
		{
			name: "ListInsert",
			a:    []any{1, 3},
			b:    []any{1, 2, 3},
			want: Array(map[Index]Change{Insert(1): Replace(2)}),
		},
		{
			name: "ListAppend",
			a:    []any{1},
			b:    []any{1, 2, 3},
			want: Array(map[Index]Change{Insert(1): Replace(2), Insert(2): Replace(3)}),
		},
		{
			name: "ListDeleteRun",
			a:    []any{0, 1, 2},
			b:    []any{2},
			want: Array(map[Index]Change{Set(0): Delete(), Set(1): Delete()}),
		},
		{
			name: "ListInsertRun",
			a:    []any{1, 4},
			b:    []any{1, 2, 3, 4},
			want: Array(map[Index]Change{Insert(1): Replace(2), Insert(2): Replace(3)}),
		},
		{
			name: "RepeatedValues",
			a:    []any{1, 1, 1},
			b:    []any{1, 1},
			want: Array(map[Index]Change{Set(2): Delete()}),
		},
		{
			name: "ListMixed",
			a:    []any{"A", "B", "C"},
			b:    []any{"N", "A", "X"},
			want: Array(map[Index]Change{
				Insert(0): Replace("N"),
				Set(1):    Replace("X"),
				Set(2):    Delete(),
			}),
		},
		{
			name: "ListItemModified",
			a:    []any{map[string]any{"id": 1, "v": 1}},
			b:    []any{map[string]any{"id": 1, "v": 2}},
			want: Array(map[Index]Change{
				Set(0): Object(map[string]Change{"v": Replace(2)}),
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.a, tt.b)
			if diff := cmp.Diff(tt.want, got, changeComparer); diff != "" {
				t.Errorf("Diff mismatch (-want +got):\n%s\ngot: %v", diff, got)
			}
			if diff := cmp.Diff(tt.b, Apply(tt.a, got), valueOpts); diff != "" {
				t.Errorf("Apply(a, Diff(a, b)) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiff_IgnorePath(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		path string
		want Change
	}{
		{
			name: "Key",
			a:    map[string]any{"a": 1, "b": 1},
			b:    map[string]any{"a": 2, "b": 2},
			path: "a",
			want: Object(map[string]Change{"b": Replace(2)}),
		},
		{
			name: "AddedKey",
			a:    map[string]any{"a": 1},
			b:    map[string]any{"a": 1, "b": 2},
			path: "b",
			want: Change{},
		},
		{
			name: "InsideList",
			a:    map[string]any{"items": []any{map[string]any{"name": "x", "v": 1}}},
			b:    map[string]any{"items": []any{map[string]any{"name": "y", "v": 2}}},
			path: "items[0].name",
			want: Object(map[string]Change{
				"items": Array(map[Index]Change{
					Set(0): Object(map[string]Change{"v": Replace(2)}),
				}),
			}),
		},
		{
			name: "DeletedItem",
			a:    map[string]any{"l": []any{1, 2}},
			b:    map[string]any{"l": []any{2}},
			path: "l[0]",
			want: Change{},
		},
		{
			name: "InsertedItemKept",
			a:    map[string]any{"l": []any{1}},
			b:    map[string]any{"l": []any{0, 1}},
			path: "l[0]",
			want: Object(map[string]Change{
				"l": Array(map[Index]Change{Insert(0): Replace(0)}),
			}),
		},
		{
			name: "Subtree",
			a:    map[string]any{"meta": map[string]any{"x": 1}, "v": 1},
			b:    map[string]any{"meta": map[string]any{"x": 2, "y": 3}, "v": 1},
			path: "meta",
			want: Change{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.a, tt.b, IgnorePath(tt.path))
			if diff := cmp.Diff(tt.want, got, changeComparer); diff != "" {
				t.Errorf("Diff mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiff_DoesNotAlias(t *testing.T) {
	a := map[string]any{}
	b := map[string]any{"list": []any{1, 2}, "m": map[string]any{"k": "v"}}
	c := Diff(a, b)

	b["list"].([]any)[0] = 100
	b["m"].(map[string]any)["k"] = "changed"

	want := map[string]any{"list": []any{1, 2}, "m": map[string]any{"k": "v"}}
	if diff := cmp.Diff(want, Apply(a, c), valueOpts); diff != "" {
		t.Errorf("change aliases its input (-want +got):\n%s", diff)
	}
}

func TestDiff_RoundTripRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		a := randomValue(r, 3)
		b := mutate(r, a, 3)
		c := Diff(a, b)
		if got := Apply(a, c); !Equal(got, b) {
			t.Fatalf("round trip %d failed\na: %v\nb: %v\nchange: %v\ngot: %v", i, a, b, c, got)
		}
		got, err := ApplyChecked(a, c)
		if err != nil {
			t.Fatalf("round trip %d: ApplyChecked: %v", i, err)
		}
		if !Equal(got, b) {
			t.Fatalf("round trip %d: ApplyChecked got %v, want %v", i, got, b)
		}
	}
}

func randomValue(r *rand.Rand, depth int) any {
	n := r.Intn(6)
	if depth == 0 {
		n = r.Intn(3)
	}
	switch n {
	case 0:
		return r.Intn(4)
	case 1:
		return []string{"a", "b", "c"}[r.Intn(3)]
	case 2:
		if r.Intn(5) == 0 {
			return nil
		}
		return r.Intn(2) == 0
	case 3, 4:
		list := make([]any, r.Intn(5))
		for i := range list {
			list[i] = randomValue(r, depth-1)
		}
		return list
	}
	m := make(map[string]any)
	for i := r.Intn(4); i > 0; i-- {
		m[[]string{"x", "y", "z", "w"}[r.Intn(4)]] = randomValue(r, depth-1)
	}
	return m
}

// mutate returns a modified copy of v; v itself is left untouched.
func mutate(r *rand.Rand, v any, depth int) any {
	if r.Intn(4) == 0 || depth == 0 {
		return randomValue(r, depth)
	}
	switch v := v.(type) {
	case []any:
		out := make([]any, 0, len(v)+2)
		for _, item := range v {
			switch r.Intn(5) {
			case 0:
				// dropped
			case 1:
				out = append(out, randomValue(r, depth-1), Copy(item))
			case 2:
				out = append(out, mutate(r, item, depth-1))
			default:
				out = append(out, Copy(item))
			}
		}
		if r.Intn(3) == 0 {
			out = append(out, randomValue(r, depth-1))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			switch r.Intn(4) {
			case 0:
				// dropped
			case 1:
				out[k] = mutate(r, item, depth-1)
			default:
				out[k] = Copy(item)
			}
		}
		if r.Intn(3) == 0 {
			out["new"] = randomValue(r, depth-1)
		}
		return out
	}
	return randomValue(r, depth)
}
