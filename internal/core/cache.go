package core

import (
	"reflect"
	"sync"
)

type FieldInfo struct {
	Index int
	Key   string
	Tag   StructTag
}

type TypeInfo struct {
	Fields []FieldInfo
}

var (
	typeCache sync.Map // map[reflect.Type]*TypeInfo
)

// GetTypeInfo returns the exported, non-ignored fields of a struct type.
func GetTypeInfo(typ reflect.Type) *TypeInfo {
	if info, ok := typeCache.Load(typ); ok {
		return info.(*TypeInfo)
	}

	info := &TypeInfo{}
	if typ.Kind() == reflect.Struct {
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			tag := ParseTag(field)
			if tag.Ignore {
				continue
			}
			key := tag.Name
			if key == "" {
				key = field.Name
			}
			info.Fields = append(info.Fields, FieldInfo{
				Index: i,
				Key:   key,
				Tag:   tag,
			})
		}
	}

	actual, _ := typeCache.LoadOrStore(typ, info)
	return actual.(*TypeInfo)
}
