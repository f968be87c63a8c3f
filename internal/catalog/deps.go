package catalog

// Deps is the dependency oracle (spec.md §4.4): a set of directed edges
// "from must precede to", keyed by bare (Vk-stripped) declaration name.
// Grounded on original_source/VulkanGenerator.cpp's m_typeDeps, which is
// itself exactly this: a set of (from, to) name pairs with insert/contains.
type Deps struct {
	edges map[edgeKey]struct{}
	from  map[string][]string // from -> []to, in insertion order, for TopologicalSort
}

type edgeKey struct{ from, to string }

// NewDeps returns an empty dependency oracle.
func NewDeps() *Deps {
	return &Deps{
		edges: make(map[edgeKey]struct{}),
		from:  make(map[string][]string),
	}
}

// Insert records that from must precede to. Duplicate inserts are a no-op.
func (d *Deps) Insert(from, to string) {
	if from == "" || to == "" || from == to {
		return
	}
	k := edgeKey{from, to}
	if _, ok := d.edges[k]; ok {
		return
	}
	d.edges[k] = struct{}{}
	d.from[from] = append(d.from[from], to)
}

// Contains reports whether the edge from->to was recorded.
func (d *Deps) Contains(from, to string) bool {
	_, ok := d.edges[edgeKey{from, to}]
	return ok
}

// Successors returns the names to such that from->to was recorded, in
// insertion order.
func (d *Deps) Successors(from string) []string {
	return d.from[from]
}
