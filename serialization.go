package delta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DeletedToken is the wire form of the deleted marker.
const DeletedToken = "$$deleted"

// MarshalJSON encodes c in the wire format: the deleted marker is
// DeletedToken, replacements are their plain JSON value, object changes are
// JSON objects and array changes are JSON objects keyed by "[N]" and "[+N]".
// An unchanged change encodes as {}.
func (c Change) MarshalJSON() ([]byte, error) {
	if c.kind == KindUnchanged {
		return []byte("{}"), nil
	}
	return json.Marshal(encodeChange(c))
}

func encodeChange(c Change) any {
	switch c.kind {
	case KindDeleted:
		return DeletedToken
	case KindReplace:
		return c.value
	case KindObject:
		m := make(map[string]any, len(c.fields))
		for k, f := range c.fields {
			m[k] = encodeChange(f)
		}
		return m
	case KindArray:
		m := make(map[string]any, len(c.ops))
		for idx, op := range c.ops {
			m["["+idx.String()+"]"] = encodeChange(op)
		}
		return m
	}
	return map[string]any{}
}

// UnmarshalJSON decodes the wire format written by MarshalJSON. A top-level
// {} decodes as unchanged while a nested {} is an empty-object replacement.
func (c *Change) UnmarshalJSON(data []byte) error {
	v, err := decodeJSON(data)
	if err != nil {
		return fmt.Errorf("decoding change: %w", err)
	}
	if m, ok := v.(map[string]any); ok && len(m) == 0 {
		*c = Change{}
		return nil
	}
	*c = decodeChange(v)
	return nil
}

// ParseChange decodes a change from its wire format.
func ParseChange(data []byte) (Change, error) {
	var c Change
	err := c.UnmarshalJSON(data)
	return c, err
}

func decodeChange(v any) Change {
	switch v := v.(type) {
	case string:
		if v == DeletedToken {
			return Delete()
		}
	case map[string]any:
		if len(v) == 0 {
			return Replace(v)
		}
		if ops, ok := decodeOps(v); ok {
			return Array(ops)
		}
		fields := make(map[string]Change, len(v))
		for k, fv := range v {
			fields[k] = decodeChange(fv)
		}
		return Object(fields)
	}
	return Replace(v)
}

// decodeOps reads an object whose keys are all bracketed array keys.
func decodeOps(m map[string]any) (map[Index]Change, bool) {
	ops := make(map[Index]Change, len(m))
	for k, v := range m {
		if !strings.HasPrefix(k, "[") || !strings.HasSuffix(k, "]") {
			return nil, false
		}
		idx, ok := ParseIndex(k[1 : len(k)-1])
		if !ok {
			return nil, false
		}
		ops[idx] = decodeChange(v)
	}
	return ops, true
}

// decodeJSON decodes a JSON document into the value model. Integral numbers
// become int64 when they fit, other numbers float64.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return fromJSONNumbers(v), nil
}

func fromJSONNumbers(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		f, _ := v.Float64()
		return f
	case []any:
		for i, item := range v {
			v[i] = fromJSONNumbers(item)
		}
	case map[string]any:
		for k, item := range v {
			v[k] = fromJSONNumbers(item)
		}
	}
	return v
}

// DecodeValue decodes a JSON document into the value model, with the same
// number handling ParseChange uses.
func DecodeValue(data []byte) (any, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decoding value: %w", err)
	}
	return v, nil
}

// GobEncode encodes c through its JSON wire format.
func (c Change) GobEncode() ([]byte, error) {
	return c.MarshalJSON()
}

// GobDecode decodes data written by GobEncode.
func (c *Change) GobDecode(data []byte) error {
	return c.UnmarshalJSON(data)
}
