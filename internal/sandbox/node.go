// Package sandbox reads Space Engineers save documents. The definitions
// document (Sandbox.sbc) yields the player identity map; the world snapshot
// (SANDBOX_0_0_0_.sbs) yields one Grid per cube grid entity, with its block
// aggregates. The traversal is read-only: patching never touches this tree.
package sandbox

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// Node is one element of the parsed document tree.
type Node struct {
	// Tag is the local element name.
	Tag string

	// Type is the xsi:type attribute, empty when absent. The save format
	// uses it as the record type discriminator.
	Type string

	// Text is the element's direct character data, trimmed.
	Text string

	Children []*Node
}

// parseTree decodes an XML document into a Node tree.
func parseTree(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	root := &Node{}
	stack := []*Node{root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode token: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: t.Name.Local}
			for _, attr := range t.Attr {
				if attr.Name.Local == "type" && attr.Name.Space == xsiNamespace {
					n.Type = attr.Value
				}
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 1 {
				return nil, fmt.Errorf("unbalanced end element %q", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			cur := stack[len(stack)-1]
			cur.Text += string(t)
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("unexpected end of document inside %q", stack[len(stack)-1].Tag)
	}
	if len(root.Children) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	trimText(root)
	return root.Children[0], nil
}

func trimText(n *Node) {
	n.Text = strings.TrimSpace(n.Text)
	for _, c := range n.Children {
		trimText(c)
	}
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildText returns the text of the first direct child with the given tag,
// or the empty string when the child is absent.
func (n *Node) ChildText(tag string) string {
	if c := n.Child(tag); c != nil {
		return c.Text
	}
	return ""
}

// Path walks the given tag sequence from n and returns every node reached.
// Each step fans out over all direct children with a matching tag, like a
// relative ./a/b/c element path.
func (n *Node) Path(tags ...string) []*Node {
	nodes := []*Node{n}
	for _, tag := range tags {
		var next []*Node
		for _, cur := range nodes {
			for _, c := range cur.Children {
				if c.Tag == tag {
					next = append(next, c)
				}
			}
		}
		nodes = next
	}
	return nodes
}

// Walk visits n and every descendant, depth first.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// typed filters nodes by their xsi:type discriminator, exact match.
func typed(nodes []*Node, xsiType string) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.Type == xsiType {
			out = append(out, n)
		}
	}
	return out
}
