package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <h1>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes
	Children []*VNode  // Child nodes
	Key      string    // Reconciliation key
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent
	HID      string    // Handle assigned by the hosting router
}

// Props holds attributes.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

// Comp wraps a component in a VNode.
func Comp(c Component) *VNode {
	return &VNode{Kind: KindComponent, Comp: c}
}

// Resolve renders component nodes until a non-component node (or nil) is
// reached.
func Resolve(node *VNode) *VNode {
	for node != nil && node.Kind == KindComponent {
		if node.Comp == nil {
			return nil
		}
		node = node.Comp.Render()
	}
	return node
}

// FirstElement returns the first element in document order, resolving
// components and descending into fragments. It returns nil when the tree
// renders no element at all.
func FirstElement(node *VNode) *VNode {
	node = Resolve(node)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case KindElement:
		return node
	case KindFragment:
		for i, child := range node.Children {
			resolved := Resolve(child)
			node.Children[i] = resolved
			if el := FirstElement(resolved); el != nil {
				return el
			}
		}
	}
	return nil
}

// StyleProperty returns the value of a property in the node's style attribute.
func (v *VNode) StyleProperty(name string) string {
	if v == nil {
		return ""
	}
	style, _ := v.Props["style"].(string)
	for _, decl := range strings.Split(style, ";") {
		k, val, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(k) == name {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

// SetStyleProperty sets (or, with an empty value, removes) a property in the
// node's style attribute, keeping the other declarations in order.
func (v *VNode) SetStyleProperty(name, value string) {
	if v == nil {
		return
	}
	if v.Props == nil {
		v.Props = make(Props)
	}
	style, _ := v.Props["style"].(string)

	var decls []string
	replaced := false
	for _, decl := range strings.Split(style, ";") {
		k, _, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(k) == name {
			if value != "" && !replaced {
				decls = append(decls, name+": "+value)
			}
			replaced = true
			continue
		}
		decls = append(decls, strings.TrimSpace(decl))
	}
	if !replaced && value != "" {
		decls = append(decls, name+": "+value)
	}

	if len(decls) == 0 {
		delete(v.Props, "style")
		return
	}
	v.Props["style"] = strings.Join(decls, "; ")
}
