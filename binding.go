package arbor

// Binding computes a property value from other cells. The compute function
// must be pure: it reads its inputs through Property.Read with the supplied
// scope so the dependency graph can be recorded, and has no side effects.
type Binding[T any] struct {
	compute func(s *Scope) T
}

// Bind wraps an arbitrary compute function.
func Bind[T any](fn func(s *Scope) T) Binding[T] {
	return Binding[T]{compute: fn}
}

// Const returns a binding with no dependencies.
func Const[T any](v T) Binding[T] {
	return Binding[T]{compute: func(*Scope) T { return v }}
}

// Map derives a value from one source with a static transform.
func Map[S, T comparable](src *Property[S], fn func(S) T) Binding[T] {
	return Binding[T]{compute: func(s *Scope) T { return fn(src.Read(s)) }}
}

// Map2 derives a value from two sources.
func Map2[A, B, T comparable](a *Property[A], b *Property[B], fn func(A, B) T) Binding[T] {
	return Binding[T]{compute: func(s *Scope) T { return fn(a.Read(s), b.Read(s)) }}
}

// When selects between two bindings on a boolean condition. Only the branch
// taken is recorded as a dependency.
func When[T any](cond *Property[bool], then, otherwise Binding[T]) Binding[T] {
	return Binding[T]{compute: func(s *Scope) T {
		if cond.Read(s) {
			return then.compute(s)
		}
		return otherwise.compute(s)
	}}
}

// Mirror follows another property's resolved value.
func Mirror[T comparable](src *Property[T]) Binding[T] {
	return Binding[T]{compute: src.Read}
}

// inheritFromOwner reads pick(owner) while v is the anchor of a control's
// template and falls back to def otherwise. Properties the owner has not set
// explicitly still resolve through the owner's own default.
func inheritFromOwner[T comparable](v *Visual, pick func(*ControlBase) *Property[T], def T) Binding[T] {
	return Binding[T]{compute: func(s *Scope) T {
		if c := v.anchorOwner.Read(s); c != nil {
			return pick(c.Base()).Read(s)
		}
		return def
	}}
}
