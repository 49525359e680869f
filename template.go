package arbor

import "fmt"

// associate marks v as the anchor of b's template and every visual below it
// as a member. Subtrees anchored by another control keep their own owner.
func (b *ControlBase) associate(v *Visual) {
	if c := v.anchorOwner.Get(); c != nil && c != b.self {
		panic(fmt.Sprintf("arbor: visual %q is already the anchor of control %q", v.Name, c.Base().Name))
	}
	v.SetAnchor(b.self)
	for _, child := range v.children {
		b.associateMember(child)
	}
}

func (b *ControlBase) associateMember(v *Visual) {
	switch v.anchorOwner.Get() {
	case b.self:
		panic(fmt.Sprintf("arbor: template of control %q has more than one anchor", b.Name))
	case nil:
	default:
		return // another control's visualization
	}
	if c := v.ownerCell.Get(); c != nil && c != b.self {
		return
	}
	v.ownerCell.Set(b.self)
	for _, child := range v.children {
		b.associateMember(child)
	}
}

// dissociate clears the association of every visual below v owned by b.
func (b *ControlBase) dissociate(v *Visual) {
	if v.anchorOwner.Get() == b.self {
		v.anchorOwner.Reset()
	}
	switch v.ownerCell.Get() {
	case b.self:
		v.ownerCell.Reset()
	case nil:
	default:
		return
	}
	for _, child := range v.children {
		b.dissociate(child)
	}
}

// DefaultTemplate presents a control's children stacked vertically.
func DefaultTemplate(c Control) *Visual {
	host := NewStack(c.Base().Name, Vertical)
	PresentChildren(host, c.Base())
	return host
}

// PresentChildren fills host with the visualizations of c's children and
// keeps it in sync as children are added, removed or moved. The returned
// subscription stops the syncing; it also stops once host is permanently
// detached.
func PresentChildren(host *Visual, c *ControlBase) Subscription {
	for _, child := range c.Children.items {
		host.AddChild(child.Base().Visualize())
	}

	added := c.Children.OnAdded(func(child Control, index int) {
		host.InsertChild(child.Base().Visualize(), min(index, host.NumChildren()))
	})
	removed := c.Children.OnRemoved(func(child Control, _ int) {
		if v := child.Base().visual; v != nil && v.parent == host {
			host.RemoveChild(v)
		}
	})
	moved := c.Children.OnMoved(func(child Control, _, to int) {
		v := child.Base().Visualize()
		if v.parent == host {
			host.InsertChild(v, min(to, host.NumChildren()-1))
		}
	})

	var detached Subscription
	stop := func() {
		added.Remove()
		removed.Remove()
		moved.Remove()
		detached.Remove()
	}
	detached = host.OnDetached(func(_ *Visual, reparenting bool) {
		if !reparenting {
			stop()
		}
	})
	return Subscription{remove: stop}
}
