package delta

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRebase_NoConflict(t *testing.T) {
	tests := []struct {
		name                  string
		source, local, remote any
		want                  any
	}{
		{
			name:   "Converged",
			source: map[string]any{"a": 1},
			local:  map[string]any{"a": 2},
			remote: map[string]any{"a": 2},
			want:   map[string]any{"a": 2},
		},
		{
			name:   "Independent",
			source: map[string]any{"a": 1, "b": 1},
			local:  map[string]any{"a": 2, "b": 1},
			remote: map[string]any{"a": 1, "b": 2},
			want:   map[string]any{"a": 2, "b": 2},
		},
		{
			name:   "LocalUnchanged",
			source: map[string]any{"a": 1},
			local:  map[string]any{"a": 1},
			remote: map[string]any{"a": 3, "b": true},
			want:   map[string]any{"a": 3, "b": true},
		},
		{
			name:   "RemoteUnchanged",
			source: map[string]any{"a": 1},
			local:  map[string]any{"a": 1, "c": "x"},
			remote: map[string]any{"a": 1},
			want:   map[string]any{"a": 1, "c": "x"},
		},
		{
			name:   "Lists",
			source: map[string]any{"tags": []any{"a", "b"}},
			local:  map[string]any{"tags": []any{"a", "b", "c"}},
			remote: map[string]any{"tags": []any{"a", "b"}, "name": "x"},
			want:   map[string]any{"tags": []any{"a", "b", "c"}, "name": "x"},
		},
		{
			// Remote insert keys address the list after the local inserts.
			name:   "InsertsOnBothSides",
			source: []any{1, 2, 3},
			local:  []any{0, 1, 2, 3},
			remote: []any{1, 2, 3, 4},
			want:   []any{0, 1, 2, 4, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rebase(tt.source, tt.local, tt.remote)
			if got.Conflict != nil {
				t.Fatalf("unexpected conflict: %+v", got.Conflict)
			}
			if diff := cmp.Diff(tt.want, got.Result); diff != "" {
				t.Errorf("Rebase mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRebase_Conflict(t *testing.T) {
	source := map[string]any{"a": 1}
	local := map[string]any{"a": 2}
	remote := map[string]any{"a": 3}

	got := Rebase(source, local, remote)
	if got.Conflict == nil {
		t.Fatal("expected conflict")
	}
	if diff := cmp.Diff(map[string]any{"a": 2}, got.Result); diff != "" {
		t.Errorf("default result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"a": 3}, got.Conflict.Remote.Merge.Result); diff != "" {
		t.Errorf("remote merge mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"a": 2}, got.Conflict.Local.Merge.Result); diff != "" {
		t.Errorf("local merge mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(source, got.Conflict.Baseline); diff != "" {
		t.Errorf("baseline mismatch (-want +got):\n%s", diff)
	}
}

func TestRebase_PartialConflict(t *testing.T) {
	source := map[string]any{"a": 1, "b": 1, "c": 1}
	local := map[string]any{"a": 2, "b": 2, "c": 1}
	remote := map[string]any{"a": 3, "b": 1, "c": 3}

	got := Rebase(source, local, remote)
	if got.Conflict == nil {
		t.Fatal("expected conflict")
	}

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"Result", got.Result, map[string]any{"a": 2, "b": 2, "c": 3}},
		{"Baseline", got.Conflict.Baseline, map[string]any{"a": 1, "b": 2, "c": 3}},
		{"LocalMerge", got.Conflict.Local.Merge.Result, map[string]any{"a": 2, "b": 2, "c": 3}},
		{"RemoteMerge", got.Conflict.Remote.Merge.Result, map[string]any{"a": 3, "b": 2, "c": 3}},
	}
	for _, c := range checks {
		if diff := cmp.Diff(c.want, c.got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", c.name, diff)
		}
	}

	wantLocal := Resolution{
		Conflicts:   Object(map[string]Change{"a": Replace(2)}),
		Differences: Object(map[string]Change{"b": Replace(2)}),
	}
	if diff := cmp.Diff(wantLocal, got.Conflict.Local.Resolution, changeComparer); diff != "" {
		t.Errorf("local resolution mismatch (-want +got):\n%s", diff)
	}
}

func TestRebase_NestedConflict(t *testing.T) {
	source := map[string]any{"spec": map[string]any{"replicas": 1, "image": "v1"}}
	local := map[string]any{"spec": map[string]any{"replicas": 2, "image": "v1"}}
	remote := map[string]any{"spec": map[string]any{"replicas": 3, "image": "v2"}}

	got := Rebase(source, local, remote)
	if got.Conflict == nil {
		t.Fatal("expected conflict")
	}
	want := map[string]any{"spec": map[string]any{"replicas": 2, "image": "v2"}}
	if diff := cmp.Diff(want, got.Result); diff != "" {
		t.Errorf("Rebase mismatch (-want +got):\n%s", diff)
	}
}

func TestRebase_DoesNotMutate(t *testing.T) {
	source := map[string]any{"a": 1, "l": []any{1}}
	local := map[string]any{"a": 2, "l": []any{1, 2}}
	remote := map[string]any{"a": 3, "l": []any{1}}

	Rebase(source, local, remote)

	if diff := cmp.Diff(map[string]any{"a": 1, "l": []any{1}}, source); diff != "" {
		t.Errorf("source modified (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"a": 2, "l": []any{1, 2}}, local); diff != "" {
		t.Errorf("local modified (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"a": 3, "l": []any{1}}, remote); diff != "" {
		t.Errorf("remote modified (-want +got):\n%s", diff)
	}
}
