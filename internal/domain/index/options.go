package index

// Weights carries the base confidence weight per alias kind.
type Weights struct {
	LastName  float64
	FirstName float64
	Nickname  float64
}

// defaultWeights mirror the documented alias-kind confidences.
var defaultWeights = Weights{ //nolint:gochecknoglobals // immutable defaults
	LastName:  80,
	FirstName: 70,
	Nickname:  90,
}

// Option applies a configuration option to the index build.
type Option func(*builder)

// WithWeights overrides the alias-kind base weights.
func WithWeights(w Weights) Option {
	return func(b *builder) {
		if w.LastName > 0 && w.FirstName > 0 && w.Nickname > 0 {
			b.weights = w
		}
	}
}
