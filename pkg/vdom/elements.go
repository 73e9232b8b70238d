package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, Component, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: make(Props),
	}
	for _, arg := range args {
		appendArg(node, arg)
	}
	return node
}

func appendArg(node *VNode, arg any) {
	switch v := arg.(type) {
	case nil:
		// Ignore nil (allows conditional children)
	case Attr:
		setAttr(node, v)
	case []Attr:
		for _, a := range v {
			setAttr(node, a)
		}
	case *VNode:
		if v != nil {
			node.Children = append(node.Children, v)
		}
	case []*VNode:
		for _, child := range v {
			if child != nil {
				node.Children = append(node.Children, child)
			}
		}
	case Component:
		if v != nil {
			node.Children = append(node.Children, Comp(v))
		}
	case string:
		node.Children = append(node.Children, Text(v))
	}
}

func setAttr(node *VNode, a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			node.Key = s
		}
		return
	}
	node.Props[a.Key] = a.Value
}

// El creates an element with an arbitrary tag.
func El(tag string, args ...any) *VNode { return createElement(tag, args) }

// Div creates a <div> element.
func Div(args ...any) *VNode { return createElement("div", args) }

// Section creates a <section> element.
func Section(args ...any) *VNode { return createElement("section", args) }

// Main creates a <main> element.
func Main(args ...any) *VNode { return createElement("main", args) }

// Nav creates a <nav> element.
func Nav(args ...any) *VNode { return createElement("nav", args) }

// H1 creates an <h1> element.
func H1(args ...any) *VNode { return createElement("h1", args) }

// H2 creates an <h2> element.
func H2(args ...any) *VNode { return createElement("h2", args) }

// P creates a <p> element.
func P(args ...any) *VNode { return createElement("p", args) }

// Span creates a <span> element.
func Span(args ...any) *VNode { return createElement("span", args) }

// A creates an <a> element.
func A(args ...any) *VNode { return createElement("a", args) }

// Ul creates a <ul> element.
func Ul(args ...any) *VNode { return createElement("ul", args) }

// Li creates an <li> element.
func Li(args ...any) *VNode { return createElement("li", args) }

// Br creates a <br> element.
func Br() *VNode { return createElement("br", nil) }
