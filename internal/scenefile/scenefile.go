// Package scenefile loads visual trees described in TOML.
//
// A scene has an optional [options] table, decoded like arbor.Options, and a
// [root] node. Nodes nest through [[...children]] arrays:
//
//	[options]
//	width = 320
//	height = 200
//
//	[root]
//	kind = "stack"
//	padding = 8
//	spacing = 4
//
//	[[root.children]]
//	kind = "text"
//	text = "hello"
//
// Kinds are "container", "stack", "text" and "control". A control node gets
// the default template and presents its children as child controls.
package scenefile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/phanxgames/arbor"
)

// ErrUnknownKind is wrapped by errors for nodes whose kind is not recognized.
var ErrUnknownKind = errors.New("scenefile: unknown node kind")

// Node kinds.
const (
	KindContainer = "container"
	KindStack     = "stack"
	KindText      = "text"
	KindControl   = "control"
)

// Scene is a decoded scene file.
type Scene struct {
	Options arbor.Options `toml:"options"`
	Root    Node          `toml:"root"`
}

// Node describes one visual or control. Unset optional fields leave the
// property at its default, so control anchors keep inheriting.
type Node struct {
	Kind string `toml:"kind"`
	Name string `toml:"name"`

	Text        string      `toml:"text"`
	Font        *arbor.Font `toml:"font"`
	Orientation string      `toml:"orientation"`
	Spacing     float64     `toml:"spacing"`

	Background *arbor.Color `toml:"background"`
	Foreground *arbor.Color `toml:"foreground"`
	Margin     *Edges       `toml:"margin"`
	Padding    *Edges       `toml:"padding"`
	MinWidth   *float64     `toml:"min_width"`
	MinHeight  *float64     `toml:"min_height"`
	MaxWidth   *float64     `toml:"max_width"`
	MaxHeight  *float64     `toml:"max_height"`
	HAlign     string       `toml:"h_align"`
	VAlign     string       `toml:"v_align"`
	Clip       *bool        `toml:"clip"`
	Outlines   bool         `toml:"debug_outlines"`

	Children []Node `toml:"children"`
}

// Edges is a thickness written as a number (all edges), a two-element array
// (horizontal, vertical) or a four-element array (left, top, right, bottom).
type Edges arbor.Thickness

// UnmarshalTOML implements toml.Unmarshaler.
func (e *Edges) UnmarshalTOML(v any) error {
	if n, ok := number(v); ok {
		*e = Edges(arbor.Uniform(n))
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return fmt.Errorf("thickness must be a number or an array, got %T", v)
	}
	vals := make([]float64, len(list))
	for i, item := range list {
		n, ok := number(item)
		if !ok {
			return fmt.Errorf("thickness element %d must be a number, got %T", i, item)
		}
		vals[i] = n
	}
	switch len(vals) {
	case 1:
		*e = Edges(arbor.Uniform(vals[0]))
	case 2:
		*e = Edges{Left: vals[0], Right: vals[0], Top: vals[1], Bottom: vals[1]}
	case 4:
		*e = Edges{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}
	default:
		return fmt.Errorf("thickness needs 1, 2 or 4 values, got %d", len(vals))
	}
	return nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Parse decodes a scene on top of arbor.DefaultOptions and checks every node.
func Parse(data string) (*Scene, error) {
	s := &Scene{Options: arbor.DefaultOptions()}
	md, err := toml.Decode(data, s)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		arbor.Logger().Warn("unknown scene keys ignored", "keys", strings.Join(keys, ","))
	}
	if err := s.Options.Validate(); err != nil {
		return nil, err
	}
	if err := s.Root.check("root"); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	s, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (n *Node) check(path string) error {
	switch n.Kind {
	case KindContainer, KindStack, KindText, KindControl:
	case "":
		n.Kind = KindContainer
	default:
		return fmt.Errorf("%s: %w %q", path, ErrUnknownKind, n.Kind)
	}
	if n.Kind == KindText && len(n.Children) > 0 {
		return fmt.Errorf("%s: text nodes cannot have children", path)
	}
	switch strings.ToLower(n.Orientation) {
	case "", "vertical", "horizontal":
	default:
		return fmt.Errorf("%s: unknown orientation %q", path, n.Orientation)
	}
	for _, a := range []string{n.HAlign, n.VAlign} {
		if a == "" {
			continue
		}
		if _, err := arbor.ParseAlignment(a); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	for i := range n.Children {
		if err := n.Children[i].check(fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// Mount builds the root node into c: a control root becomes the canvas
// content, anything else is added as a child visual.
func (s *Scene) Mount(c *arbor.Canvas) {
	if s.Root.Kind == KindControl {
		c.SetContent(BuildControl(s.Root))
		return
	}
	c.AddChild(BuildVisual(s.Root))
}

// BuildVisual creates the visual tree for n. Control nodes are visualized
// immediately.
func BuildVisual(n Node) *arbor.Visual {
	if n.Kind == KindControl {
		return BuildControl(n).Visualize()
	}
	name := n.displayName()
	var v *arbor.Visual
	switch n.Kind {
	case KindText:
		var font arbor.Font
		if n.Font != nil {
			font = *n.Font
		}
		v = arbor.NewText(name, n.Text, font)
	case KindStack:
		v = arbor.NewStack(name, n.orientation())
		v.Behavior().(*arbor.StackLayout).Spacing = n.Spacing
	default:
		v = arbor.NewContainer(name)
	}
	n.applyVisual(v)
	for _, child := range n.Children {
		v.AddChild(BuildVisual(child))
	}
	return v
}

// BuildControl creates a control for n. Non-control nodes are wrapped in a
// control whose template builds the node's visual tree afresh on every
// visualization.
func BuildControl(n Node) *arbor.ControlBase {
	if n.Kind != KindControl {
		return arbor.NewControl(n.displayName(), func(arbor.Control) *arbor.Visual {
			return BuildVisual(n)
		})
	}
	c := arbor.NewControl(n.displayName(), nil)
	n.applyControl(c)
	for _, child := range n.Children {
		c.Children.Add(BuildControl(child))
	}
	return c
}

func (n Node) displayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Kind
}

func (n Node) orientation() arbor.Orientation {
	if strings.EqualFold(n.Orientation, "horizontal") {
		return arbor.Horizontal
	}
	return arbor.Vertical
}

func (n Node) applyVisual(v *arbor.Visual) {
	if n.Background != nil {
		v.Background.Set(*n.Background)
	}
	if n.Foreground != nil {
		v.Foreground.Set(*n.Foreground)
	}
	if n.Margin != nil {
		v.Margin.Set(arbor.Thickness(*n.Margin))
	}
	if n.Padding != nil {
		v.Padding.Set(arbor.Thickness(*n.Padding))
	}
	setFloat(v.MinWidth, n.MinWidth)
	setFloat(v.MinHeight, n.MinHeight)
	setFloat(v.MaxWidth, n.MaxWidth)
	setFloat(v.MaxHeight, n.MaxHeight)
	if a, err := arbor.ParseAlignment(n.HAlign); err == nil && n.HAlign != "" {
		v.HorizontalAlignment.Set(a)
	}
	if a, err := arbor.ParseAlignment(n.VAlign); err == nil && n.VAlign != "" {
		v.VerticalAlignment.Set(a)
	}
	if n.Clip != nil {
		v.ClipToBounds.Set(*n.Clip)
	}
	if n.Outlines {
		v.SetDebugOutlines(true)
	}
}

func (n Node) applyControl(c *arbor.ControlBase) {
	if n.Background != nil {
		c.Background.Set(*n.Background)
	}
	if n.Foreground != nil {
		c.Foreground.Set(*n.Foreground)
	}
	if n.Margin != nil {
		c.Margin.Set(arbor.Thickness(*n.Margin))
	}
	if n.Padding != nil {
		c.Padding.Set(arbor.Thickness(*n.Padding))
	}
	setFloat(c.MinWidth, n.MinWidth)
	setFloat(c.MinHeight, n.MinHeight)
	setFloat(c.MaxWidth, n.MaxWidth)
	setFloat(c.MaxHeight, n.MaxHeight)
	if a, err := arbor.ParseAlignment(n.HAlign); err == nil && n.HAlign != "" {
		c.HorizontalAlignment.Set(a)
	}
	if a, err := arbor.ParseAlignment(n.VAlign); err == nil && n.VAlign != "" {
		c.VerticalAlignment.Set(a)
	}
}

func setFloat(p *arbor.Property[float64], v *float64) {
	if v != nil {
		p.Set(*v)
	}
}
