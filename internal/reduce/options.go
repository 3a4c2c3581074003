package reduce

// Option tunes a parallel search.
type Option func(*options)

type options struct {
	shortCircuit bool
}

// WithShortCircuit lets workers stop scanning once any worker has found the
// key. It only affects latency: the combined result is identical with or
// without it.
func WithShortCircuit() Option {
	return func(o *options) { o.shortCircuit = true }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
