package core

import (
	"reflect"
	"sync"
)

// VisitKey identifies a pair of containers already being compared.
type VisitKey struct {
	A, B uintptr
	Kind Kind
}

var visitedPool = sync.Pool{
	New: func() any {
		return make(map[VisitKey]bool)
	},
}

// Equal performs a deep structural equality check between a and b.
//
// Maps and lists are compared by content, numbers numerically across Go
// numeric kinds, and anything outside the JSON data model with
// reflect.DeepEqual. Shared and cyclic graphs terminate: a pair of containers
// met a second time during the same call is assumed equal.
func Equal(a, b any) bool {
	visited := visitedPool.Get().(map[VisitKey]bool)
	defer func() {
		for k := range visited {
			delete(visited, k)
		}
		visitedPool.Put(visited)
	}()

	return equalRecursive(a, b, visited)
}

func equalRecursive(a, b any, visited map[VisitKey]bool) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}

	switch ka {
	case KindNull:
		return true
	case KindBool:
		return a.(bool) == b.(bool)
	case KindString:
		return a.(string) == b.(string)
	case KindNumber:
		return numberEqual(a, b)
	case KindList:
		la, lb := a.([]any), b.([]any)
		if len(la) != len(lb) {
			return false
		}
		if len(la) == 0 {
			return true
		}
		if !markVisited(la, lb, KindList, visited) {
			return true
		}
		for i := range la {
			if !equalRecursive(la[i], lb[i], visited) {
				return false
			}
		}
		return true
	case KindMap:
		ma, mb := a.(map[string]any), b.(map[string]any)
		if len(ma) != len(mb) {
			return false
		}
		if len(ma) == 0 {
			return true
		}
		if !markVisited(ma, mb, KindMap, visited) {
			return true
		}
		for k, va := range ma {
			vb, ok := mb[k]
			if !ok {
				return false
			}
			if !equalRecursive(va, vb, visited) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// markVisited records the (a, b) pair and reports whether it was new. Identical
// containers are reported as already visited.
func markVisited(a, b any, kind Kind, visited map[VisitKey]bool) bool {
	ptrA := reflect.ValueOf(a).Pointer()
	ptrB := reflect.ValueOf(b).Pointer()
	if ptrA == ptrB {
		return false
	}
	k := VisitKey{ptrA, ptrB, kind}
	if visited[k] {
		return false
	}
	visited[k] = true
	return true
}
