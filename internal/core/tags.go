package core

import (
	"reflect"
	"strings"
)

// StructTag holds the options of a struct field relevant to normalization.
type StructTag struct {
	// Name is the key the field maps to. Empty means the Go field name.
	Name      string
	OmitEmpty bool
	Ignore    bool
}

// ParseTag reads the `delta` and `json` tags of field. A `delta:"-"` tag
// always wins; otherwise the json tag provides the name and omitempty flag.
func ParseTag(field reflect.StructField) StructTag {
	if strings.TrimSpace(field.Tag.Get("delta")) == "-" {
		return StructTag{Ignore: true}
	}

	tag, ok := field.Tag.Lookup("json")
	if !ok {
		return StructTag{}
	}
	if tag == "-" {
		return StructTag{Ignore: true}
	}

	st := StructTag{}
	parts := strings.Split(tag, ",")
	st.Name = parts[0]
	for _, part := range parts[1:] {
		if strings.TrimSpace(part) == "omitempty" {
			st.OmitEmpty = true
		}
	}
	return st
}
