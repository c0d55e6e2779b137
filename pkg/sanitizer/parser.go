package sanitizer

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultMaxDepth bounds how deep the element tree is walked. Anything
// nested deeper is discarded.
const DefaultMaxDepth = 256

// Parser turns untrusted markup into a tree. TryParse returns false when the
// input cannot be parsed; the caller then falls back to blunt tag stripping.
//
// The returned node is a detached container whose children are the parsed
// top-level nodes. Implementations must not retain it.
type Parser interface {
	TryParse(input string) (*html.Node, bool)
}

// ParserFunc adapts an ordinary function to the Parser interface.
type ParserFunc func(input string) (*html.Node, bool)

func (f ParserFunc) TryParse(input string) (*html.Node, bool) {
	return f(input)
}

// HTMLParser is the lenient HTML5 parser from golang.org/x/net/html,
// parsing input as the content of a <body> element.
type HTMLParser struct{}

func (HTMLParser) TryParse(input string) (root *html.Node, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			root, ok = nil, false
		}
	}()

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(input), body)
	if err != nil {
		return nil, false
	}

	root = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		root.AppendChild(n)
	}
	return root, true
}
