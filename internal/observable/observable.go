// Package observable implements the editor's lifecycle signals: a list of callbacks invoked in
// registration order each time a value is published.
package observable

// Observer is the token returned by Add; pass it to Remove to unsubscribe.
type Observer[T any] struct {
	fn   func(T)
	once bool
}

// Observable fans a value out to registered callbacks. It is not safe for concurrent use; the
// editor publishes from its single update goroutine.
type Observable[T any] struct {
	observers []*Observer[T]
}

// New returns an Observable without observers.
func New[T any]() *Observable[T] {
	return &Observable[T]{}
}

// Add registers fn to run on every Notify.
func (o *Observable[T]) Add(fn func(T)) *Observer[T] {
	obs := &Observer[T]{fn: fn}
	o.observers = append(o.observers, obs)
	return obs
}

// AddOnce registers fn to run on the next Notify only.
func (o *Observable[T]) AddOnce(fn func(T)) *Observer[T] {
	obs := &Observer[T]{fn: fn, once: true}
	o.observers = append(o.observers, obs)
	return obs
}

// Remove unsubscribes obs. Returns false if it was not registered.
func (o *Observable[T]) Remove(obs *Observer[T]) bool {
	for i, cur := range o.observers {
		if cur == obs {
			o.observers = append(o.observers[:i], o.observers[i+1:]...)
			return true
		}
	}
	return false
}

// HasObservers reports whether any callback is registered.
func (o *Observable[T]) HasObservers() bool {
	return len(o.observers) > 0
}

// Notify calls every observer with v. Once-observers are removed before they run, so a
// callback that publishes again does not see itself twice.
func (o *Observable[T]) Notify(v T) {
	current := o.observers
	kept := make([]*Observer[T], 0, len(current))
	for _, obs := range current {
		if !obs.once {
			kept = append(kept, obs)
		}
	}
	o.observers = kept
	for _, obs := range current {
		obs.fn(v)
	}
}
