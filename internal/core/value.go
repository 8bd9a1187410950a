package core

import (
	"reflect"
)

// Kind classifies a Value for diffing purposes.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
	// KindOther is any Go value outside the JSON data model. Such values are
	// treated as opaque primitives.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "other"
	}
}

// KindOf returns the Kind of v.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case string:
		return KindString
	case []any:
		return KindList
	case map[string]any:
		return KindMap
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return KindNumber
	}
	return KindOther
}

// IsContainer reports whether v is a list or a map.
func IsContainer(v any) bool {
	k := KindOf(v)
	return k == KindList || k == KindMap
}

// numberEqual compares two numeric values across Go numeric kinds.
func numberEqual(a, b any) bool {
	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if isInt(va.Kind()) && isInt(vb.Kind()) {
		return va.Int() == vb.Int()
	}
	if isUint(va.Kind()) && isUint(vb.Kind()) {
		return va.Uint() == vb.Uint()
	}
	if isInt(va.Kind()) && isUint(vb.Kind()) {
		return va.Int() >= 0 && uint64(va.Int()) == vb.Uint()
	}
	if isUint(va.Kind()) && isInt(vb.Kind()) {
		return vb.Int() >= 0 && va.Uint() == uint64(vb.Int())
	}
	return toFloat(va) == toFloat(vb)
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v.Kind()):
		return float64(v.Int())
	case isUint(v.Kind()):
		return float64(v.Uint())
	default:
		return v.Float()
	}
}
