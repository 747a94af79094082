// Package validator holds the graph-shape checks run during state graph
// construction. It works on plain adjacency data so it stays independent
// of the runtime's state records.
package validator

import "sort"

// Order computes a topological order of the n-vertex directed graph
// whose outgoing edges are given by the edges function. When the graph
// is acyclic, cyclic is nil. Otherwise order is nil and cyclic holds
// only the vertices that sit on a cycle (or on a path between two
// cycles); vertices merely reachable from a cycle are not reported.
//
// The order is deterministic: among ready vertices the lowest index is
// emitted first.
func Order(n int, edges func(int) []int) (order []int, cyclic []int) {
	indegree := make([]int, n)
	for v := 0; v < n; v++ {
		for _, w := range edges(v) {
			indegree[w]++
		}
	}

	ready := &intHeap{}
	for v := 0; v < n; v++ {
		if indegree[v] == 0 {
			ready.push(v)
		}
	}

	order = make([]int, 0, n)
	for ready.len() > 0 {
		v := ready.pop()
		order = append(order, v)
		for _, w := range edges(v) {
			indegree[w]--
			if indegree[w] == 0 {
				ready.push(w)
			}
		}
	}

	if len(order) == n {
		return order, nil
	}

	ordered := make(map[int]struct{}, len(order))
	for _, v := range order {
		ordered[v] = struct{}{}
	}
	residual := make(map[int]struct{}, n-len(order))
	for v := 0; v < n; v++ {
		if _, ok := ordered[v]; !ok {
			residual[v] = struct{}{}
		}
	}

	// The Kahn residual contains everything downstream of a cycle as
	// well. Peel vertices with no residual successor until only the
	// cycles themselves (and paths between them) remain.
	for {
		peeled := false
		for v := range residual {
			blocked := false
			for _, w := range edges(v) {
				if _, ok := residual[w]; ok {
					blocked = true
					break
				}
			}
			if !blocked {
				delete(residual, v)
				peeled = true
			}
		}
		if !peeled {
			break
		}
	}

	cyclic = make([]int, 0, len(residual))
	for v := range residual {
		cyclic = append(cyclic, v)
	}
	sort.Ints(cyclic)
	return nil, cyclic
}

// Closure computes the transitive closure of each vertex over a DAG,
// excluding the vertex itself. The order must be a topological order as
// produced by Order; closures are accumulated from it back to front so
// each vertex is processed once.
func Closure(n int, order []int, edges func(int) []int) [][]int {
	closure := make([][]int, n)
	// Walk the order in reverse: successors are complete before any of
	// their predecessors.
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		set := map[int]struct{}{}
		for _, w := range edges(v) {
			set[w] = struct{}{}
			for _, x := range closure[w] {
				set[x] = struct{}{}
			}
		}
		out := make([]int, 0, len(set))
		for w := range set {
			out = append(out, w)
		}
		sort.Ints(out)
		closure[v] = out
	}
	return closure
}

// intHeap is a small min-heap backing the deterministic ready queue.
type intHeap struct{ xs []int }

func (h *intHeap) len() int { return len(h.xs) }

func (h *intHeap) push(v int) {
	h.xs = append(h.xs, v)
	i := len(h.xs) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if h.xs[parent] <= h.xs[i] {
			break
		}
		h.xs[parent], h.xs[i] = h.xs[i], h.xs[parent]
		i = parent
	}
}

func (h *intHeap) pop() int {
	top := h.xs[0]
	last := len(h.xs) - 1
	h.xs[0] = h.xs[last]
	h.xs = h.xs[:last]
	i := 0
	for {
		l, r := 2*i+1, 2*i+2
		smallest := i
		if l < len(h.xs) && h.xs[l] < h.xs[smallest] {
			smallest = l
		}
		if r < len(h.xs) && h.xs[r] < h.xs[smallest] {
			smallest = r
		}
		if smallest == i {
			break
		}
		h.xs[i], h.xs[smallest] = h.xs[smallest], h.xs[i]
		i = smallest
	}
	return top
}
