// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"maps"
	"slices"
)

// Values is a read-only view over a configuration tree produced by a
// [Loader]. Keys map to scalars, lists or nested trees.
//
// Nested trees are surfaced as Values and lists are returned as copies, so
// a holder of a Values cannot mutate the tree it wraps. The zero value is an
// empty tree.
type Values struct {
	m map[string]any
}

// ReadOnly wraps m without copying it. The caller hands m over and must not
// mutate it afterwards.
func ReadOnly(m map[string]any) Values {
	return Values{m: m}
}

// Empty returns an empty tree.
func Empty() Values {
	return Values{}
}

// Len reports the number of top-level keys.
func (v Values) Len() int {
	return len(v.m)
}

// Keys returns the top-level keys in sorted order.
func (v Values) Keys() []string {
	return slices.Sorted(maps.Keys(v.m))
}

// Get returns the value stored under key. Nested trees are returned as
// Values, lists as copies.
func (v Values) Get(key string) (any, bool) {
	raw, ok := v.m[key]
	if !ok {
		return nil, false
	}
	return readOnlyValue(raw), true
}

// Lookup follows a path of keys through nested trees.
func (v Values) Lookup(path ...string) (any, bool) {
	cur := v
	for i, key := range path {
		val, ok := cur.Get(key)
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return val, true
		}
		if cur, ok = val.(Values); !ok {
			return nil, false
		}
	}
	return cur, true
}

// Range calls fn for every top-level key in sorted order until fn returns
// false. Values passed to fn follow the same rules as [Values.Get].
func (v Values) Range(fn func(key string, value any) bool) {
	for _, key := range v.Keys() {
		if !fn(key, readOnlyValue(v.m[key])) {
			return
		}
	}
}

// Map returns a deep, caller-owned copy of the tree.
func (v Values) Map() map[string]any {
	return copyTree(v.m)
}

func readOnlyValue(raw any) any {
	switch typed := raw.(type) {
	case map[string]any:
		return Values{m: typed}
	case []any:
		return copyList(typed)
	default:
		return raw
	}
}

func copyTree(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = copyValue(val)
	}
	return dst
}

func copyList(src []any) []any {
	if src == nil {
		return nil
	}
	dst := make([]any, len(src))
	for i, val := range src {
		dst[i] = copyValue(val)
	}
	return dst
}

func copyValue(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		return copyTree(typed)
	case []any:
		return copyList(typed)
	case Values:
		return typed.Map()
	default:
		return val
	}
}
