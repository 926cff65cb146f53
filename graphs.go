// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

// enqueueNeighbors appends the members of edges (array or set) not yet
// reached to the queue.
func enqueueNeighbors(edges Value, queue *Array, reached *Set) {
	switch edges := edges.(type) {
	case *Set:
		for _, elem := range edges.buckets {
			for ; elem != nil; elem = elem.next {
				if reached == nil || !reached.Contains(elem.v) {
					queue.Append(elem.v)
				}
			}
		}
	case *Array:
		for i := range edges.elems {
			elem := edges.elems[i].v
			if reached == nil || !reached.Contains(elem) {
				queue.Append(elem)
			}
		}
	}
}

// GraphReachable walks graph (an object mapping node to neighbors,
// each an array or set) breadth-first from the initial nodes and
// returns the reached set.
func GraphReachable(graph, initial Value) Value {
	if _, ok := graph.(*Object); !ok {
		return nil
	}
	switch initial.Type() {
	case TypeSet, TypeArray:
	default:
		return nil
	}

	// Queue of nodes still to visit, seeded with the initial nodes.
	queue := NewArray()
	enqueueNeighbors(initial, queue, nil)

	reached := NewSet()

	for index := 0; index < queue.Len(); index++ {
		node := queue.elems[index].v
		if edges := Get(graph, node); edges != nil {
			enqueueNeighbors(edges, queue, reached)
			reached.Add(node)
		}
	}

	return reached
}
