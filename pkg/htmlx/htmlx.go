// Package htmlx provides facilities for various html editing
package htmlx

import (
	"fmt"
	"iter"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// cspell:words htmlx

// SanitizeFragment parses source as a html fragment inside a <footer> element and renders it again.
// Unclosed elements are closed, and <script> and <style> elements are removed.
func SanitizeFragment(source string) (string, error) {
	var builder strings.Builder
	builder.Grow(len(source))

	parent := &html.Node{Type: html.ElementNode, Data: "footer", DataAtom: atom.Footer}
	nodes, err := html.ParseFragment(strings.NewReader(source), parent)
	if err != nil {
		return "", fmt.Errorf("failed to parse html fragment: %w", err)
	}

	for _, node := range nodes {
		if isActive(node) {
			continue
		}

		// collect first, removing nodes during iteration would skip their siblings
		var remove []*html.Node
		for child := range IterTree(node) {
			if child != node && isActive(child) {
				remove = append(remove, child)
			}
		}
		for _, child := range remove {
			child.Parent.RemoveChild(child)
		}

		if err := html.Render(&builder, node); err != nil {
			return "", fmt.Errorf("failed to render node: %w", err)
		}
	}
	return builder.String(), nil
}

func isActive(node *html.Node) bool {
	return node.Type == html.ElementNode && (node.DataAtom == atom.Script || node.DataAtom == atom.Style)
}

// IterTree calls f recursively for all nodes contained in the tree starting at node.
//
// f is called first recursively for all children (in order), and then for the node itself.
// The argument to f is guaranteed never to be nil.
func IterTree(node *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		iterTree(node, yield)
	}
}

func iterTree(node *html.Node, f func(node *html.Node) bool) bool {
	if node == nil {
		return true
	}

	// iterate over all the children
	child := node.FirstChild
	for child != nil {
		if !iterTree(child, f) {
			return false
		}
		child = child.NextSibling
	}

	// and then the node itself
	return f(node)
}
