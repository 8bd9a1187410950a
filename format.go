package delta

import (
	"encoding/json"
	"fmt"
	"strings"
)

// String renders c for humans. Deleted entries are prefixed with "-",
// insertions with "+" and replacements with "~".
func (c Change) String() string {
	return c.format(0)
}

func (c Change) format(indent int) string {
	switch c.kind {
	case KindUnchanged:
		return "Unchanged"
	case KindDeleted:
		return "Deleted"
	case KindReplace:
		return formatValue(c.value)
	}

	var b strings.Builder
	if c.kind == KindObject {
		b.WriteString("Object{\n")
	} else {
		b.WriteString("Array{\n")
	}
	prefix := strings.Repeat("  ", indent+1)
	for _, k := range c.Keys() {
		child, _ := c.child(k)
		if c.kind == KindArray {
			k = "[" + k + "]"
		}
		switch {
		case child.IsDeleted():
			fmt.Fprintf(&b, "%s- %s\n", prefix, k)
		case child.kind == KindReplace && strings.HasPrefix(k, "[+"):
			fmt.Fprintf(&b, "%s+ %s: %s\n", prefix, k, child.format(indent+1))
		case child.kind == KindReplace:
			fmt.Fprintf(&b, "%s~ %s: %s\n", prefix, k, child.format(indent+1))
		default:
			fmt.Fprintf(&b, "%s  %s: %s\n", prefix, k, child.format(indent+1))
		}
	}
	b.WriteString(strings.Repeat("  ", indent) + "}")
	return b.String()
}

func formatValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
