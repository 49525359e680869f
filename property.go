package arbor

import "fmt"

// InvalidationKind selects what a property owner must redo when a property's
// resolved value changes.
type InvalidationKind uint8

const (
	AffectsNone          InvalidationKind = iota // no owner work
	AffectsVisualization                         // rebuild the owning control's template
	AffectsMeasure                               // re-measure (implies arrange and render)
	AffectsArrange                               // re-arrange (implies render)
	AffectsRender                                // redraw only
)

var invalidationNames = [...]string{"none", "visualization", "measure", "arrange", "render"}

func (k InvalidationKind) String() string {
	if int(k) < len(invalidationNames) {
		return invalidationNames[k]
	}
	return fmt.Sprintf("invalidation(%d)", k)
}

// PropertyOwner receives change notifications from the properties it owns.
// Visual and ControlBase implement it.
type PropertyOwner interface {
	Invalidate(kind InvalidationKind)
}

// source is a cell that other cells can depend on.
type source interface {
	addDependent(d dependent)
	removeDependent(d dependent)
}

// dependent is a cell whose value is derived from sources.
type dependent interface {
	// markStale discards the cached value. Cells that need an eager equality
	// check after the write are appended to pending.
	markStale(pending *[]dependent)
	// refresh re-resolves the value, notifying the owner when it changed.
	refresh()
}

// Property is a reactive value slot. Its value is either a literal set with
// Set or computed by a Binding; reads always reflect the current state of the
// binding graph. When the resolved value changes the owner is notified with
// the property's InvalidationKind.
//
// Bindings must not depend on themselves, directly or transitively. A cycle is
// detected on evaluation and panics.
type Property[T comparable] struct {
	name  string
	owner PropertyOwner
	kind  InvalidationKind

	def      Binding[T]
	explicit *Binding[T] // nil when the default binding is in effect

	value     T
	valid     bool
	hasValue  bool
	computing bool

	sources    []source
	dependents []dependent
}

// NewProperty creates a property owned by owner. def supplies the value while
// nothing has been set explicitly. owner may be nil for free-standing cells.
func NewProperty[T comparable](owner PropertyOwner, name string, kind InvalidationKind, def Binding[T]) *Property[T] {
	return &Property[T]{name: name, owner: owner, kind: kind, def: def}
}

// NewValue creates an unowned property holding a literal default.
func NewValue[T comparable](name string, v T) *Property[T] {
	return NewProperty[T](nil, name, AffectsNone, Const(v))
}

// Name returns the diagnostic name given at construction.
func (p *Property[T]) Name() string {
	return p.name
}

// Kind returns the invalidation kind reported to the owner.
func (p *Property[T]) Kind() InvalidationKind {
	return p.kind
}

// Get returns the resolved value, recomputing the binding if a source changed
// since the last read.
func (p *Property[T]) Get() T {
	if p.valid {
		return p.value
	}
	if p.computing {
		panic(fmt.Sprintf("arbor: binding cycle detected at property %q", p.name))
	}
	b := p.def
	if p.explicit != nil {
		b = *p.explicit
	}

	p.computing = true
	scope := Scope{}
	var v T
	func() {
		defer func() { p.computing = false }()
		if b.compute != nil {
			v = b.compute(&scope)
		}
	}()
	p.resubscribe(scope.sources)

	changed := p.hasValue && v != p.value
	p.value = v
	p.valid = true
	p.hasValue = true
	if changed && p.owner != nil && p.kind != AffectsNone {
		p.owner.Invalidate(p.kind)
	}
	return v
}

// Read returns the resolved value and records p as a dependency of the
// binding currently being evaluated in s.
func (p *Property[T]) Read(s *Scope) T {
	if s != nil {
		s.track(p)
	}
	return p.Get()
}

// Set overrides the property with a literal value, replacing any binding.
func (p *Property[T]) Set(v T) {
	b := Const(v)
	p.assign(&b)
}

// Bind replaces the property's value source with b.
func (p *Property[T]) Bind(b Binding[T]) {
	p.assign(&b)
}

// Reset drops any explicit value or binding and reverts to the default.
func (p *Property[T]) Reset() {
	if p.explicit == nil {
		return
	}
	p.assign(nil)
}

// IsSet reports whether an explicit value or binding is in effect.
func (p *Property[T]) IsSet() bool {
	return p.explicit != nil
}

func (p *Property[T]) assign(b *Binding[T]) {
	p.explicit = b
	pending := make([]dependent, 0, 4)
	if p.valid {
		p.valid = false
		for _, d := range p.dependents {
			d.markStale(&pending)
		}
	}
	// The cell itself is always re-checked so the owner sees the new value.
	p.refresh()
	for _, d := range pending {
		d.refresh()
	}
}

func (p *Property[T]) markStale(pending *[]dependent) {
	if !p.valid {
		return
	}
	p.valid = false
	if p.owner != nil && p.kind != AffectsNone {
		*pending = append(*pending, p)
	}
	for _, d := range p.dependents {
		d.markStale(pending)
	}
}

func (p *Property[T]) refresh() {
	if !p.valid {
		p.Get()
	}
}

func (p *Property[T]) addDependent(d dependent) {
	for _, e := range p.dependents {
		if e == d {
			return
		}
	}
	p.dependents = append(p.dependents, d)
}

func (p *Property[T]) removeDependent(d dependent) {
	for i, e := range p.dependents {
		if e == d {
			copy(p.dependents[i:], p.dependents[i+1:])
			p.dependents[len(p.dependents)-1] = nil
			p.dependents = p.dependents[:len(p.dependents)-1]
			return
		}
	}
}

// resubscribe replaces the recorded sources with the ones read during the
// latest evaluation.
func (p *Property[T]) resubscribe(next []source) {
	for _, old := range p.sources {
		if !containsSource(next, old) {
			old.removeDependent(p)
		}
	}
	for _, s := range next {
		if !containsSource(p.sources, s) {
			s.addDependent(p)
		}
	}
	p.sources = next
}

func containsSource(list []source, s source) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}

// Scope records the cells read while a binding is evaluated.
type Scope struct {
	sources []source
}

func (s *Scope) track(src source) {
	if !containsSource(s.sources, src) {
		s.sources = append(s.sources, src)
	}
}
