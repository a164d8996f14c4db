package view

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed page.html
var pageHTML []byte

// HTMLDocument implements Document over a parsed HTML tree. Named regions
// are indexed once at parse time, so ids on elements appended later never
// shadow them.
type HTMLDocument struct {
	root *html.Node
	byID map[string]*html.Node
}

// NewPage parses the embedded dashboard page.
func NewPage() (*HTMLDocument, error) {
	return ParseDocument(bytes.NewReader(pageHTML))
}

// ParseDocument parses an HTML page and indexes its elements by id.
func ParseDocument(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	d := &HTMLDocument{root: root, byID: make(map[string]*html.Node)}

	var index func(*html.Node)
	index = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := attr(n, "id"); id != "" {
				if _, dup := d.byID[id]; !dup {
					d.byID[id] = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			index(c)
		}
	}
	index(root)

	return d, nil
}

// Render writes the whole document as HTML.
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *HTMLDocument) node(id string) (*html.Node, error) {
	n, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, id)
	}
	return n, nil
}

func (d *HTMLDocument) ClearRegion(region string) error {
	n, err := d.node(region)
	if err != nil {
		return err
	}
	removeChildren(n)
	return nil
}

func (d *HTMLDocument) Append(region string, el Element) error {
	n, err := d.node(region)
	if err != nil {
		return err
	}
	n.AppendChild(build(el))
	return nil
}

func (d *HTMLDocument) SetValue(field, value string) error {
	n, err := d.node(field)
	if err != nil {
		return err
	}
	setAttr(n, "value", value)
	return nil
}

func (d *HTMLDocument) Value(field string) (string, error) {
	n, err := d.node(field)
	if err != nil {
		return "", err
	}
	return attr(n, "value"), nil
}

func (d *HTMLDocument) SetText(id, text string) error {
	n, err := d.node(id)
	if err != nil {
		return err
	}
	removeChildren(n)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return nil
}

func (d *HTMLDocument) SetAttr(id, key, value string) error {
	n, err := d.node(id)
	if err != nil {
		return err
	}
	setAttr(n, key, value)
	return nil
}

// Text returns the concatenated text content of an element.
func (d *HTMLDocument) Text(id string) (string, error) {
	n, err := d.node(id)
	if err != nil {
		return "", err
	}
	return textContent(n), nil
}

// Attr returns one attribute of an element.
func (d *HTMLDocument) Attr(id, key string) (string, error) {
	n, err := d.node(id)
	if err != nil {
		return "", err
	}
	return attr(n, key), nil
}

// Read converts the children of a region back into Elements.
func (d *HTMLDocument) Read(region string) ([]Element, error) {
	n, err := d.node(region)
	if err != nil {
		return nil, err
	}
	return readChildren(n), nil
}

func build(el Element) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     el.Tag,
		DataAtom: atom.Lookup([]byte(el.Tag)),
	}
	for _, a := range el.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if el.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: el.Text})
	}
	for _, c := range el.Children {
		n.AppendChild(build(c))
	}
	return n
}

func readChildren(n *html.Node) []Element {
	var out []Element
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		el := Element{Tag: c.Data, Children: readChildren(c)}
		for _, a := range c.Attr {
			el.Attrs = append(el.Attrs, Attr{Key: a.Key, Val: a.Val})
		}
		for t := c.FirstChild; t != nil; t = t.NextSibling {
			if t.Type == html.TextNode {
				el.Text += t.Data
			}
		}
		el.Text = strings.TrimSpace(el.Text)
		out = append(out, el)
	}
	return out
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
