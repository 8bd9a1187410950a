package delta

import (
	"encoding/json"
	"errors"
	"testing"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

func TestToJSONPatch(t *testing.T) {
	tests := []struct {
		name string
		a, b any
	}{
		{
			name: "Keys",
			a:    map[string]any{"a": 1, "b": 2},
			b:    map[string]any{"a": 3, "c": 4},
		},
		{
			name: "Nested",
			a:    map[string]any{"spec": map[string]any{"replicas": 1, "image": "v1"}},
			b:    map[string]any{"spec": map[string]any{"replicas": 2}, "status": map[string]any{"ready": true}},
		},
		{
			name: "EscapedKeys",
			a:    map[string]any{"a/b": 1, "c~d": 1},
			b:    map[string]any{"a/b": 2},
		},
		{
			name: "ListMixed",
			a:    map[string]any{"l": []any{"A", "B", "C"}},
			b:    map[string]any{"l": []any{"N", "A", "X"}},
		},
		{
			name: "ListAppend",
			a:    map[string]any{"l": []any{1}},
			b:    map[string]any{"l": []any{1, 2, 3}},
		},
		{
			name: "ListOfMaps",
			a:    map[string]any{"l": []any{map[string]any{"id": 1}, map[string]any{"id": 2}, "x"}},
			b:    map[string]any{"l": []any{"y", map[string]any{"id": 1, "v": true}, map[string]any{"id": 2}}},
		},
		{
			name: "KindChange",
			a:    map[string]any{"v": []any{1}},
			b:    map[string]any{"v": map[string]any{"k": 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Diff(tt.a, tt.b)
			data, err := ToJSONPatch(tt.a, c)
			if err != nil {
				t.Fatalf("ToJSONPatch: %v", err)
			}
			assertJSONPatch(t, tt.a, data, Apply(tt.a, c))
		})
	}
}

func TestToJSONPatch_SetExtends(t *testing.T) {
	base := map[string]any{"l": []any{1}}
	c := Object(map[string]Change{"l": Array(map[Index]Change{Set(3): Replace(4)})})

	data, err := ToJSONPatch(base, c)
	if err != nil {
		t.Fatalf("ToJSONPatch: %v", err)
	}
	assertJSONPatch(t, base, data, map[string]any{"l": []any{1, nil, nil, 4}})
}

func TestToJSONPatch_Unchanged(t *testing.T) {
	data, err := ToJSONPatch(map[string]any{"a": 1}, Change{})
	if err != nil {
		t.Fatalf("ToJSONPatch: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("ToJSONPatch = %s, want []", data)
	}
}

func TestToJSONPatch_Malformed(t *testing.T) {
	_, err := ToJSONPatch(5, Object(map[string]Change{"a": Replace(1)}))
	if !errors.Is(err, ErrMalformedPatch) {
		t.Errorf("error = %v, want ErrMalformedPatch", err)
	}
}

func assertJSONPatch(t *testing.T, base any, patchData []byte, want any) {
	t.Helper()
	patch, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		t.Fatalf("DecodePatch(%s): %v", patchData, err)
	}
	doc, err := json.Marshal(base)
	if err != nil {
		t.Fatal(err)
	}
	out, err := patch.Apply(doc)
	if err != nil {
		t.Fatalf("applying %s: %v", patchData, err)
	}
	got, err := DecodeValue(out)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(got, want) {
		t.Errorf("JSON Patch %s\nproduced %v, want %v", patchData, got, want)
	}
}
