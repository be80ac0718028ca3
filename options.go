package lazycell

// Option configures a Registry.
type Option func(*Registry)

// WithObserver attaches an Observer that receives init, hit, shared, and
// poisoned events for the lifetime of the registry.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		r.observer = o
	}
}
