package rev

import (
	"fmt"
	"io"
	"strconv"

	"github.com/awalterschulze/gographviz"
)

// WriteDOT renders p as a graphviz digraph: ops form a chain in execution
// order, registers are ellipses, dashed edges mark reads and solid edges
// mark writes. Branch bodies are laid out after their branch node.
func WriteDOT(w io.Writer, p *Program) error {
	graph := gographviz.NewGraph()
	if err := graph.SetName(strconv.Quote(p.Name)); err != nil {
		return err
	}
	if err := graph.SetDir(true); err != nil {
		return err
	}
	_ = graph.AddAttr(graph.Name, "rankdir", "LR")

	var (
		prev  string
		index int
		err   error
	)
	p.Walk(func(op Op, depth int) {
		if err != nil {
			return
		}
		node := "op" + strconv.Itoa(index)
		index++
		attrs := map[string]string{
			"label": strconv.Quote(op.String()),
			"shape": "box",
		}
		if depth > 0 {
			attrs["style"] = "rounded"
		}
		if err = graph.AddNode(graph.Name, node, attrs); err != nil {
			return
		}
		if prev != "" {
			if err = graph.AddEdge(prev, node, true, nil); err != nil {
				return
			}
		}
		prev = node
		if _, nested := op.(*Program); nested {
			return
		}
		for _, r := range op.Reads() {
			if err = addRegister(graph, r); err != nil {
				return
			}
			if err = graph.AddEdge(regNode(r), node, true, map[string]string{"style": "dashed"}); err != nil {
				return
			}
		}
		for _, r := range op.Writes() {
			if err = addRegister(graph, r); err != nil {
				return
			}
			if err = graph.AddEdge(node, regNode(r), true, nil); err != nil {
				return
			}
		}
	})
	if err != nil {
		return fmt.Errorf("dot %s: %w", p.Name, err)
	}
	_, err = io.WriteString(w, graph.String())

	return err
}

func regNode(name string) string { return strconv.Quote("reg:" + name) }

func addRegister(graph *gographviz.Graph, name string) error {
	if graph.IsNode(regNode(name)) {
		return nil
	}

	return graph.AddNode(graph.Name, regNode(name), map[string]string{
		"label": strconv.Quote(name),
		"shape": "ellipse",
	})
}
