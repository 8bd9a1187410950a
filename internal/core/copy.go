package core

import (
	"reflect"
)

type copyKey struct {
	ptr uintptr
	len int
}

// Copy creates a deep copy of v. Maps and lists are duplicated; everything else
// is copied by value.
//
// Shared references are preserved within a single call: two entries pointing
// at the same map (or the same list) before copying point at the same copy
// afterwards. Cyclic graphs are supported.
func Copy(v any) any {
	if !IsContainer(v) {
		return v
	}
	pointers := make(map[copyKey]any)
	return recursiveCopy(v, pointers)
}

func recursiveCopy(src any, pointers map[copyKey]any) any {
	switch v := src.(type) {
	case []any:
		return recursiveCopyList(v, pointers)
	case map[string]any:
		return recursiveCopyMap(v, pointers)
	default:
		// Primitive type, just copy it.
		return src
	}
}

func recursiveCopyList(v []any, pointers map[copyKey]any) any {
	if v == nil {
		return []any(nil)
	}
	if len(v) == 0 {
		return []any{}
	}

	// If the list is already in the pointers map, return its copy.
	key := copyKey{reflect.ValueOf(v).Pointer(), len(v)}
	if dst, ok := pointers[key]; ok {
		return dst
	}

	dst := make([]any, len(v))
	pointers[key] = dst
	for i, elem := range v {
		dst[i] = recursiveCopy(elem, pointers)
	}
	return dst
}

func recursiveCopyMap(v map[string]any, pointers map[copyKey]any) any {
	if v == nil {
		return map[string]any(nil)
	}

	key := copyKey{reflect.ValueOf(v).Pointer(), 0}
	if dst, ok := pointers[key]; ok {
		return dst
	}

	dst := make(map[string]any, len(v))
	pointers[key] = dst
	for k, elem := range v {
		dst[k] = recursiveCopy(elem, pointers)
	}
	return dst
}
