package report

// Filter keeps nodes whose name contains q, ignoring case and accents, along
// with their full subtrees and their ancestors. Branches without a match are
// dropped. The input forest is not modified and no rollup is repeated.
func Filter[V any](roots []*Node[V], q string) []*Node[V] {
	needle := fold(q)
	if needle == "" {
		return roots
	}
	out := filterNodes(roots, needle)
	if out == nil {
		out = []*Node[V]{}
	}
	return out
}

func filterNodes[V any](nodes []*Node[V], needle string) []*Node[V] {
	var out []*Node[V]
	for _, n := range nodes {
		if containsFolded(n.Name, needle) {
			out = append(out, n)
			continue
		}
		kept := filterNodes(n.Children, needle)
		if len(kept) == 0 {
			continue
		}
		cp := *n
		cp.Children = kept
		out = append(out, &cp)
	}
	return out
}
