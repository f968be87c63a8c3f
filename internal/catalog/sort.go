package catalog

// TopologicalSort reorders ids in place by Kahn's algorithm
// (spec.md §4.5), using deps to determine edges between the *names* of
// declarations. It is a direct port of original_source/Sort.hpp's
// indirectPartition/topologicalSortImpl: a stable partition moves every
// currently zero-in-degree item to the front of the unsettled range, then
// each newly settled item's out-edges decrement its successors'
// in-degree, repeating until the unsettled range is empty or a full pass
// promotes nothing (the remainder is a cycle).
//
// It returns the cycle, if any: the names of the TypeIDs left unsorted at the tail,
// together with the back-edges found among them (for diagnostics only —
// emission proceeds over the full, partially-ordered list regardless).
func TopologicalSort(ids []TypeID, names func(TypeID) string, deps *Deps) Cycle {
	n := len(ids)
	if n == 0 {
		return Cycle{}
	}

	name := make([]string, n)
	for i, id := range ids {
		name[i] = names(id)
	}

	edge := func(from, to string) bool { return deps.Contains(from, to) }

	inDegree := make([]int, n)

	swap := func(a, b int) {
		ids[a], ids[b] = ids[b], ids[a]
		name[a], name[b] = name[b], name[a]
		inDegree[a], inDegree[b] = inDegree[b], inDegree[a]
	}

	for i := 0; i < n; i++ {
		count := 0
		for j := 0; j < n; j++ {
			if edge(name[j], name[i]) {
				count++
			}
		}
		inDegree[i] = count
	}

	sorted := indirectPartition(0, n, func(i int) bool { return inDegree[i] == 0 }, swap)

	i := 0
	for sorted != n {
		if i == sorted {
			break // cyclic: no new zero-in-degree item found this pass
		}
		ref := name[i]
		sorted = indirectPartition(sorted, n, func(j int) bool {
			if !edge(ref, name[j]) {
				return false
			}
			inDegree[j]--
			return inDegree[j] == 0
		}, swap)
		i++
	}

	if sorted == n {
		return Cycle{}
	}
	return buildCycle(name[sorted:], deps)
}

// indirectPartition stably moves every index i in [start, end) satisfying
// pred(i) to the front of that range, calling pred exactly once per
// index (pred may carry side effects, as topologicalSort's does). It
// returns the boundary: [start, boundary) satisfies pred, [boundary, end)
// does not.
func indirectPartition(start, end int, pred func(int) bool, swap func(a, b int)) int {
	i := start
	for ; i != end; i++ {
		if !pred(i) {
			for j := i; ; {
				j++
				if j == end {
					break
				}
				if pred(j) {
					swap(j, i)
					i++
				}
			}
			break
		}
	}
	return i
}

// Cycle is the diagnostic payload for an unresolved remainder of
// TopologicalSort: its members and the back-edges found strictly among
// them.
type Cycle struct {
	Members   []string
	BackEdges []BackEdge
}

// BackEdge is one edge found between two members of a reported cycle.
type BackEdge struct {
	From, To string
}

func (c Cycle) Empty() bool { return len(c.Members) == 0 }

func buildCycle(members []string, deps *Deps) Cycle {
	c := Cycle{Members: append([]string(nil), members...)}
	for _, from := range members {
		for _, to := range members {
			if from != to && deps.Contains(from, to) {
				c.BackEdges = append(c.BackEdges, BackEdge{From: from, To: to})
			}
		}
	}
	return c
}
