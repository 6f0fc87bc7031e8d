package pool

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(count int) Option {
	return func(p *Pool) {
		if count > 0 {
			p.workers = count
		}
	}
}

// WithQueueSize bounds the number of tasks waiting for a worker.
func WithQueueSize(size int) Option {
	return func(p *Pool) {
		if size > 0 {
			p.queueSize = size
		}
	}
}
