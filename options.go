package dynbitvec

type options struct {
	wordWidth        int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures New's constructor behavior.
//
// Today options primarily exist to avoid exploding New's signature with
// ambient collaborators (logger, metrics) that most callers don't need to
// think about.
//
// Breaking changes are expected while dynbitvec is pre-release.
type Option func(*options)

// WithWordWidth configures the fanout knob W: a node packs Degree =
// W/CounterWidth children per word, and a leaf holds W bits, where W is a
// power of two no larger than the real 64-bit machine word backing both
// pools. Smaller W trades fanout (shallower trees, more sibling
// redistribution) for leaving the packed words partially unused; 64 (the
// default) always maximizes fanout for the given capacity.
func WithWordWidth(w int) Option {
	return func(o *options) {
		o.wordWidth = w
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &dynbitvec.BasicMetricsCollector{}
//	v, _ := dynbitvec.New(1<<20, dynbitvec.WithMetricsCollector(metrics))
//	// ... use v ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for root promotions and
// sibling-window redistributions. Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := dynbitvec.NewJSONLogger(slog.LevelDebug)
//	v, _ := dynbitvec.New(1<<20, dynbitvec.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		wordWidth:        64,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
