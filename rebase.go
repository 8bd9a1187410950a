package delta

// Result is the outcome of a three-way merge.
type Result struct {
	// Result is the merged value. When Conflict is set it holds the default
	// resolution, in which local edits win.
	Result any
	// Conflict is nil unless local and remote edited overlapping paths.
	Conflict *Conflict
}

// Conflict describes overlapping edits found by Rebase.
type Conflict struct {
	// Baseline is the source with the non-conflicting edits of both sides
	// applied.
	Baseline any
	Local    Side
	Remote   Side
}

// Side is one revision's view of a conflict.
type Side struct {
	// Resolution splits the side's change into the part conflicting with
	// the other side and the part independent of it.
	Resolution
	// Merge holds Baseline with this side's conflicting edits applied.
	Merge Result
}

// Rebase reconciles local and remote, two revisions derived from source.
//
// Non-overlapping edits are combined. Overlapping edits are reported through
// Result.Conflict, and Result.Result then holds remote with local's edits
// applied on top. Rebase never fails.
func Rebase(source, local, remote any) Result {
	lc := Diff(source, local)
	rc := Diff(source, remote)

	switch {
	case lc.IsUnchanged() || lc.Equal(rc):
		return Result{Result: Apply(source, rc)}
	case rc.IsUnchanged():
		return Result{Result: Apply(source, lc)}
	case !HasConflict(rc, lc):
		return Result{Result: Apply(Apply(source, lc), rc)}
	}

	localRes := ResolveConflicts(rc, lc)
	remoteRes := ResolveConflicts(lc, rc)
	baseline := Apply(Apply(source, localRes.Differences), remoteRes.Differences)

	return Result{
		Result: Apply(Apply(remote, localRes.Differences), localRes.Conflicts),
		Conflict: &Conflict{
			Baseline: baseline,
			Local: Side{
				Resolution: localRes,
				Merge:      Result{Result: Apply(baseline, localRes.Conflicts)},
			},
			Remote: Side{
				Resolution: remoteRes,
				Merge:      Result{Result: Apply(baseline, remoteRes.Conflicts)},
			},
		},
	}
}
