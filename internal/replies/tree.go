package replies

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// node is a namespace-agnostic view of a reply element. Replies are matched
// by local element name only, wherever the element appears in the tree.
type node struct {
	XMLName  xml.Name
	Text     string `xml:",chardata"`
	Children []node `xml:",any"`
}

func parseTree(data []byte) (*node, error) {
	var root node
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// find returns every descendant named local, in document order
func (n *node) find(local string) []*node {
	var out []*node
	var walk func(*node)
	walk = func(cur *node) {
		for i := range cur.Children {
			child := &cur.Children[i]
			if child.XMLName.Local == local {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(n)
	return out
}

// first returns the first descendant named local, or nil
func (n *node) first(local string) *node {
	for i := range n.Children {
		child := &n.Children[i]
		if child.XMLName.Local == local {
			return child
		}
		if found := child.first(local); found != nil {
			return found
		}
	}
	return nil
}

// text returns the trimmed text of n and all its descendants
func (n *node) text() string {
	var b strings.Builder
	var walk func(*node)
	walk = func(cur *node) {
		b.WriteString(cur.Text)
		for i := range cur.Children {
			walk(&cur.Children[i])
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// textOf returns the text of the first descendant named local
func (n *node) textOf(local string) (string, bool) {
	found := n.first(local)
	if found == nil {
		return "", false
	}
	return found.text(), true
}
