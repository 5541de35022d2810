package labels

// Resolver computes annotations, descriptions, labels, usage and effective
// configuration over one device graph. It never modifies the graph.
type Resolver struct {
	graph deviceGraph
	boot  espDetector
}

// New returns a Resolver backed by graph and the ESP predicate of boot.
func New(graph deviceGraph, boot espDetector) *Resolver {
	return &Resolver{graph: graph, boot: boot}
}
