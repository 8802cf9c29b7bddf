package report

import (
	"sort"
	"strings"

	"github.com/resultado/dre/internal/classification"
)

// shape is a node of the synthesized tree before values are attached.
type shape struct {
	key         CompositeKey
	display     string
	name        string
	depth       int
	synthesized bool
	children    []*shape
}

// arena owns every shape until parent links are resolved.
type arena struct {
	nodes            map[CompositeKey]*shape
	order            []CompositeKey
	byClassification map[string][]CompositeKey
}

func newArena() *arena {
	return &arena{
		nodes:            make(map[CompositeKey]*shape),
		byClassification: make(map[string][]CompositeKey),
	}
}

func (a *arena) add(k CompositeKey, display string, synthesized bool) *shape {
	if s, ok := a.nodes[k]; ok {
		return s
	}
	if display == "" {
		display = k.Classification
	}
	s := &shape{key: k, display: display, synthesized: synthesized}
	a.nodes[k] = s
	a.order = append(a.order, k)
	a.byClassification[k.Classification] = append(a.byClassification[k.Classification], k)
	return s
}

// parentOf resolves the parent of k.
//
// Sub-account rows belong to their base-account row. Everything else belongs
// to a node at the direct parent classification. When several accounts share
// that classification the first-seen base row wins, then the first-seen row
// of any kind.
func (a *arena) parentOf(k CompositeKey) *shape {
	if !k.IsBase() {
		if base, ok := a.nodes[k.Base()]; ok {
			return base
		}
	}
	pc := classification.Parent(k.Classification)
	if pc == "" {
		return nil
	}
	candidates := a.byClassification[pc]
	for _, c := range candidates {
		if c.IsBase() {
			return a.nodes[c]
		}
	}
	if len(candidates) > 0 {
		return a.nodes[candidates[0]]
	}
	return nil
}

// synthesize turns observed keys into a connected, ordered forest of shapes.
func (e *Engine) synthesize(keys *keySet) []*shape {
	a := newArena()
	for _, k := range keys.order {
		a.add(k, keys.raw[k], false)
	}

	for _, k := range keys.order {
		if !k.IsBase() && k.Account != "" {
			a.add(k.Base(), keys.raw[k], true)
		}
		for _, anc := range classification.Ancestors(k.Classification) {
			if len(a.byClassification[anc]) == 0 {
				a.add(CompositeKey{Classification: anc}, "", true)
			}
		}
	}

	for _, k := range a.order {
		e.describe(a.nodes[k], keys)
	}

	var roots []*shape
	attached := make(map[CompositeKey]struct{}, len(a.order))
	for _, k := range a.order {
		if _, done := attached[k]; done {
			continue
		}
		attached[k] = struct{}{}
		s := a.nodes[k]
		if p := a.parentOf(k); p != nil {
			p.children = append(p.children, s)
		} else {
			roots = append(roots, s)
		}
	}

	sortShapes(roots)
	return roots
}

// describe fills the display name and depth of s.
func (e *Engine) describe(s *shape, keys *keySet) {
	c := s.key.Classification

	var catName string
	var catDepth int
	if e.catalog != nil {
		if name, depth, ok := e.catalog.Lookup(c); ok {
			catName = strings.TrimSpace(name)
			catDepth = depth
		}
	}

	switch {
	case s.key.IsBase() && catName != "":
		s.name = catName
	case keys.names[s.key] != "":
		s.name = keys.names[s.key]
	case keys.classNames[c] != "":
		s.name = keys.classNames[c]
	case catName != "":
		s.name = catName
	default:
		s.name = s.display
	}

	if catDepth > 0 {
		s.depth = catDepth
	} else {
		s.depth = classification.Depth(c)
	}
}

func sortShapes(shapes []*shape) {
	sort.Slice(shapes, func(i, j int) bool {
		return shapes[i].key.Less(shapes[j].key)
	})
	for _, s := range shapes {
		sortShapes(s.children)
	}
}

// materialize converts shapes into report nodes carrying values.
func materialize[V any](shapes []*shape, value func(CompositeKey) V) []*Node[V] {
	if len(shapes) == 0 {
		return nil
	}
	nodes := make([]*Node[V], 0, len(shapes))
	for _, s := range shapes {
		nodes = append(nodes, &Node[V]{
			Key:            s.key,
			Classification: s.display,
			Name:           s.name,
			Depth:          s.depth,
			Synthesized:    s.synthesized,
			Values:         value(s.key),
			Children:       materialize(s.children, value),
		})
	}
	return nodes
}
