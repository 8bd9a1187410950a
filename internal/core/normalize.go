package core

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

var (
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Normalize converts an arbitrary Go value into the Value model: nil, bool,
// int64, uint64, float64, string, []any and map[string]any.
//
// Structs become maps keyed by their json names (or field names), honoring
// omitempty and `delta:"-"`. Types implementing json.Marshaler or
// encoding.TextMarshaler are normalized through their encoding. Functions,
// channels, complex numbers and pointer cycles are rejected.
func Normalize(v any) (any, error) {
	visiting := make(map[uintptr]bool)
	return normalizeValue(reflect.ValueOf(v), visiting)
}

func normalizeValue(v reflect.Value, visiting map[uintptr]bool) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	if v.Kind() != reflect.Interface && v.Kind() != reflect.Pointer && v.CanInterface() {
		if v.Type().Implements(jsonMarshalerType) || v.Type().Implements(textMarshalerType) {
			return normalizeMarshaler(v)
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.String:
		return v.String(), nil
	case reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return normalizeValue(v.Elem(), visiting)
	case reflect.Pointer:
		if v.IsNil() {
			return nil, nil
		}
		if v.CanInterface() && v.Type().Implements(jsonMarshalerType) {
			return normalizeMarshaler(v)
		}
		ptr := v.Pointer()
		if visiting[ptr] {
			return nil, fmt.Errorf("cyclic value through %v", v.Type())
		}
		visiting[ptr] = true
		defer delete(visiting, ptr)
		return normalizeValue(v.Elem(), visiting)
	case reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
		ptr := v.Pointer()
		if v.Len() > 0 {
			if visiting[ptr] {
				return nil, fmt.Errorf("cyclic value through %v", v.Type())
			}
			visiting[ptr] = true
			defer delete(visiting, ptr)
		}
		return normalizeList(v, visiting)
	case reflect.Array:
		return normalizeList(v, visiting)
	case reflect.Map:
		if v.IsNil() {
			return nil, nil
		}
		ptr := v.Pointer()
		if visiting[ptr] {
			return nil, fmt.Errorf("cyclic value through %v", v.Type())
		}
		visiting[ptr] = true
		defer delete(visiting, ptr)
		return normalizeMap(v, visiting)
	case reflect.Struct:
		return normalizeStruct(v, visiting)
	}

	return nil, fmt.Errorf("unsupported type: %v", v.Type())
}

func normalizeList(v reflect.Value, visiting map[uintptr]bool) (any, error) {
	dst := make([]any, v.Len())
	for i := 0; i < v.Len(); i++ {
		elem, err := normalizeValue(v.Index(i), visiting)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		dst[i] = elem
	}
	return dst, nil
}

func normalizeMap(v reflect.Value, visiting map[uintptr]bool) (any, error) {
	dst := make(map[string]any, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key, err := mapKeyString(iter.Key())
		if err != nil {
			return nil, err
		}
		elem, err := normalizeValue(iter.Value(), visiting)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		dst[key] = elem
	}
	return dst, nil
}

func mapKeyString(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if k.CanInterface() && k.Type().Implements(textMarshalerType) {
		b, err := k.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	switch {
	case k.Kind() == reflect.Interface && !k.IsNil():
		return mapKeyString(k.Elem())
	case isInt(k.Kind()):
		return strconv.FormatInt(k.Int(), 10), nil
	case isUint(k.Kind()):
		return strconv.FormatUint(k.Uint(), 10), nil
	case k.Kind() == reflect.Bool:
		return strconv.FormatBool(k.Bool()), nil
	case k.Kind() == reflect.Float32 || k.Kind() == reflect.Float64:
		return strconv.FormatFloat(k.Float(), 'g', -1, 64), nil
	}
	return "", fmt.Errorf("unsupported map key type: %v", k.Type())
}

func normalizeStruct(v reflect.Value, visiting map[uintptr]bool) (any, error) {
	info := GetTypeInfo(v.Type())
	dst := make(map[string]any, len(info.Fields))
	for _, fInfo := range info.Fields {
		f := v.Field(fInfo.Index)
		if fInfo.Tag.OmitEmpty && f.IsZero() {
			continue
		}
		elem, err := normalizeValue(f, visiting)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fInfo.Key, err)
		}
		dst[fInfo.Key] = elem
	}
	return dst, nil
}

func normalizeMarshaler(v reflect.Value) (any, error) {
	data, err := json.Marshal(v.Interface())
	if err != nil {
		return nil, fmt.Errorf("marshal %v: %w", v.Type(), err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshal %v: %w", v.Type(), err)
	}
	return out, nil
}
