package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/phanxgames/arbor"
)

var (
	colorCyan = lipgloss.Color("36")
	colorBlue = lipgloss.Color("75")
	colorDim  = lipgloss.Color("240")

	styleName    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleBounds  = lipgloss.NewStyle().Foreground(colorBlue)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleEnumDim = lipgloss.NewStyle().Foreground(colorDim).MarginRight(1)
)

// layoutTree renders v and its subtree as a lipgloss tree.
func layoutTree(v *arbor.Visual) *tree.Tree {
	t := tree.Root(visualLabel(v)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(styleEnumDim)
	for _, c := range v.Children() {
		t.Child(layoutTree(c))
	}
	return t
}

// visualLabel is "name [x,y wxh] measured wxh", plus the owning control for
// template anchors.
func visualLabel(v *arbor.Visual) string {
	label := styleName.Render(v.Name) + " " + styleBounds.Render(formatRect(v.Bounds()))
	m := v.MeasuredSize()
	label += " " + styleDim.Render(fmt.Sprintf("measured %gx%g", m.Width, m.Height))
	if v.IsAnchor() {
		if owner := v.TemplateOwner(); owner != nil {
			label += " " + styleDim.Render("anchor of "+owner.Base().Name)
		}
	}
	return label
}

func formatRect(r arbor.Rect) string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.Width, r.Height)
}
