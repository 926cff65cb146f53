// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Object algebra and JSON-pointer style filtering.

package regovm

import (
	"strconv"
	"strings"
)

// mergeObjects is the recursive union where b wins on conflicting
// scalar leaves.
func mergeObjects(a, b Value) Value {
	merged := NewObject()
	other := b.(*Object)

	it := NewIterator(a)
	for key := it.Next(); key != nil; key = it.Next() {
		original := Get(a, key)
		elem := other.get(key)
		if elem == nil {
			// The key only exists in a, keep the original value.
			merged.Insert(key, original)
			continue
		}
		merged.Insert(key, mergeWithOverwrite(original, elem.v))
	}

	// Copy in values from b for keys that don't exist in a.
	for _, elem := range other.buckets {
		for ; elem != nil; elem = elem.next {
			if Get(a, elem.k) == nil {
				merged.Insert(elem.k, elem.v)
			}
		}
	}

	return merged
}

func mergeWithOverwrite(a, b Value) Value {
	if a == nil || a.Type() != TypeObject || b == nil || b.Type() != TypeObject {
		// If we can't merge, stick with the right-hand value.
		return b
	}
	return mergeObjects(a, b)
}

// ObjectFilter returns obj restricted to the given keys (an object,
// array or set of keys).
func ObjectFilter(obj, keys Value) Value {
	o, ok := obj.(*Object)
	if !ok {
		return nil
	}
	switch keys.Type() {
	case TypeObject, TypeArray, TypeSet:
	default:
		return nil
	}

	r := NewObject()
	it := NewIterator(keys)
	for key := it.Next(); key != nil; key = it.Next() {
		k := key
		if keys.Type() == TypeArray {
			k = Get(keys, key)
		}
		if elem := o.get(k); elem != nil {
			r.Insert(k, elem.v)
		}
	}
	return r
}

// ObjectGet looks key up in obj, following it as a path when it is an
// array, and returns fallback when the lookup fails. The empty path
// addresses obj itself.
func ObjectGet(obj, key, fallback Value) Value {
	if _, ok := obj.(*Object); !ok {
		return nil
	}

	path, ok := key.(*Array)
	if !ok {
		if elem := Get(obj, key); elem != nil {
			return elem
		}
		return fallback
	}

	if path.Len() == 0 {
		return obj
	}

	node := obj
	for i := range path.elems {
		elem := Get(node, path.elems[i].v)
		if elem == nil {
			return fallback
		}
		if i == path.Len()-1 {
			return elem
		}
		node = elem
	}
	return fallback
}

// ObjectKeys returns the keys of obj as a set.
func ObjectKeys(a Value) Value {
	obj, ok := a.(*Object)
	if !ok {
		return nil
	}
	keys := NewSetWithCap(obj.Len())
	for _, elem := range obj.buckets {
		for ; elem != nil; elem = elem.next {
			keys.Add(elem.k)
		}
	}
	return keys
}

// ObjectRemove returns obj without the given keys (an object, array or
// set of keys).
func ObjectRemove(obj, keys Value) Value {
	o, ok := obj.(*Object)
	if !ok {
		return nil
	}
	switch keys.Type() {
	case TypeObject, TypeArray, TypeSet:
	default:
		return nil
	}

	remove := NewSet()
	it := NewIterator(keys)
	for key := it.Next(); key != nil; key = it.Next() {
		k := key
		if keys.Type() == TypeArray {
			k = Get(keys, key)
		}
		remove.Add(k)
	}

	r := NewObject()
	it = NewIterator(o)
	for key := it.Next(); key != nil; key = it.Next() {
		if !remove.Contains(key) {
			r.Insert(key, o.Get(key))
		}
	}
	return r
}

// ObjectUnion recursively merges two objects; b wins on scalar
// conflicts.
func ObjectUnion(a, b Value) Value {
	if _, ok := a.(*Object); !ok {
		return nil
	}
	if _, ok := b.(*Object); !ok {
		return nil
	}
	return mergeObjects(a, b)
}

// parsePath expands a path into its segments: either a `/`-separated
// pointer string with ~0 and ~1 escapes, or an array of segments.
func parsePath(a Value) *Array {
	segments := NewArray()
	switch a := a.(type) {
	case *String:
		if a.v == "" {
			return segments
		}
		for _, part := range strings.Split(strings.TrimLeft(a.v, "/"), "/") {
			part = strings.ReplaceAll(part, "~1", "/")
			part = strings.ReplaceAll(part, "~0", "~")
			segments.Append(NewString(part))
		}
		return segments
	case *Array:
		for i := range a.elems {
			segments.Append(a.elems[i].v)
		}
		return segments
	}
	return nil
}

func jsonPaths(a Value) *Array {
	paths := NewArray()
	it := NewIterator(a)
	for key := it.Next(); key != nil; key = it.Next() {
		k := key
		if a.Type() == TypeArray {
			k = Get(a, key)
		}
		path := parsePath(k)
		if path == nil {
			return nil
		}
		paths.Append(path)
	}
	return paths
}

// pathsToObject overlays the paths into a nested object whose leaves
// are null markers.
func pathsToObject(paths *Array) *Object {
	root := NewObject()
	for i := range paths.elems {
		node := root
		done := false
		terms := paths.elems[i].v.(*Array)

		for j := 0; j < terms.Len()-1 && !done; j++ {
			k := terms.elems[j].v
			child := Get(node, k)
			if child == nil {
				obj := NewObject()
				node.Insert(k, obj)
				node = obj
				continue
			}
			switch child.Type() {
			case TypeNull:
				// An ancestor path already covers this subtree.
				done = true
			case TypeObject:
				node = child.(*Object)
			}
		}

		if !done {
			node.Insert(terms.elems[terms.Len()-1].v, NewNull())
		}
	}
	return root
}

// jsonRemove returns a with every subtree marked in b removed. Null in
// b marks a leaf to drop; objects in b descend.
func jsonRemove(a, b Value) Value {
	if b == nil {
		// The paths diverged.
		return a
	}

	switch b.Type() {
	case TypeObject:
	case TypeNull:
		return nil
	default:
		return a
	}

	switch a := a.(type) {
	case *String, *Number, *Boolean, *Null:
		return a
	case *Object:
		r := NewObject()
		it := NewIterator(a)
		for key := it.Next(); key != nil; key = it.Next() {
			if diff := jsonRemove(Get(a, key), Get(b, key)); diff != nil {
				r.Insert(key, diff)
			}
		}
		return r
	case *Set:
		r := NewSet()
		for _, elem := range a.buckets {
			for ; elem != nil; elem = elem.next {
				if diff := jsonRemove(elem.v, Get(b, elem.v)); diff != nil {
					r.Add(diff)
				}
			}
		}
		return r
	case *Array:
		r := NewArray()
		for i := range a.elems {
			// Pointer segments address array indices as strings.
			idx := NewString(strconv.Itoa(i))
			if diff := jsonRemove(a.elems[i].v, Get(b, idx)); diff != nil {
				r.Append(diff)
			}
		}
		return r
	}
	return nil
}

// jsonFilter returns the parts of a covered by the paths in b. Null in
// b keeps the whole subtree.
func jsonFilter(a, b Value) Value {
	if b != nil && b.Type() == TypeNull {
		return a
	}
	if b == nil || b.Type() != TypeObject {
		return nil
	}

	switch a := a.(type) {
	case *String, *Number, *Boolean, *Null:
		return a
	case *Object:
		r := NewObject()
		iter := Value(a)
		other := b
		if a.Len() < Length(b) {
			iter, other = b, a
		}
		it := NewIterator(iter)
		for key := it.Next(); key != nil; key = it.Next() {
			if Get(other, key) == nil {
				continue
			}
			if filtered := jsonFilter(Get(a, key), Get(b, key)); filtered != nil {
				r.Insert(key, filtered)
			}
		}
		return r
	case *Set:
		r := NewSet()
		for _, elem := range a.buckets {
			for ; elem != nil; elem = elem.next {
				if filtered := jsonFilter(elem.v, Get(b, elem.v)); filtered != nil {
					r.Add(filtered)
				}
			}
		}
		return r
	case *Array:
		r := NewArray()
		for i := range a.elems {
			idx := NewString(strconv.Itoa(i))
			if filtered := jsonFilter(a.elems[i].v, Get(b, idx)); filtered != nil {
				r.Append(filtered)
			}
		}
		return r
	}
	return nil
}

// JSONRemove removes every path in paths from obj. Missing paths are
// ignored.
func JSONRemove(obj, paths Value) Value {
	if _, ok := obj.(*Object); !ok {
		return nil
	}
	switch paths.Type() {
	case TypeArray, TypeSet:
	default:
		return nil
	}

	jp := jsonPaths(paths)
	if jp == nil {
		return nil
	}
	return jsonRemove(obj, pathsToObject(jp))
}

// JSONFilter keeps only the paths in paths inside obj.
func JSONFilter(obj, paths Value) Value {
	if _, ok := obj.(*Object); !ok {
		return nil
	}
	switch paths.Type() {
	case TypeArray, TypeSet:
	default:
		return nil
	}

	jp := jsonPaths(paths)
	if jp == nil {
		return nil
	}
	return jsonFilter(obj, pathsToObject(jp))
}
