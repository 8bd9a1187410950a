package delta

import "github.com/brunoga/delta/internal/core"

type ignorePathOption string

func (o ignorePathOption) applyDiff(c *diffConfig) {
	if c.ignoredPaths == nil {
		c.ignoredPaths = make(map[string]bool)
	}
	c.ignoredPaths[core.FormatPath(core.ParsePath(string(o)))] = true
}

// IgnorePath returns an option that tells Diff to ignore changes at the
// specified path and below it. The path uses dotted notation (e.g.
// "spec.replicas", "items[0].name", `labels["app.kubernetes.io/name"]`).
// Inside lists the index is the index in the original list, so an ignored
// index suppresses the deletion or modification of that item. Insertions are
// keyed in the resulting list and are not filtered: ignoring "l[0]" still
// reports an item inserted at the front of l.
func IgnorePath(path string) DiffOption {
	return ignorePathOption(path)
}
