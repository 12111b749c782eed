package rangepart

// Config holds the four tunables spec.md §6 enumerates. Zero-value Config
// is never used directly — NewConfig applies the documented defaults, and
// callers override individual fields with Option functions, mirroring the
// teacher's functional-options constructors
// (sampling.WithReservoirItemsSketchResizeFactor).
type Config struct {
	// DefaultParallelism holds the default-parallelism setting for the
	// default-partitioner selector (C5, package partitioner). New does not
	// read it, and partitioner.Default takes the value as its own uint32
	// argument rather than reading a Config.
	DefaultParallelism uint32
	// SampleSizeCap bounds the total number of keys pulled to the
	// coordinator across all partitions (spec.md §4.4 step 1).
	SampleSizeCap uint64
	// SampleSizeMultiplier scales the requested partition count into a
	// target sample size (spec.md §4.4 step 1).
	SampleSizeMultiplier uint32
	// OverSampleFactor hedges the per-partition cap against imbalance
	// (spec.md §4.4 step 2).
	OverSampleFactor float32
}

// Option configures a Config. Apply with NewConfig(opts...) or pass
// directly to New.
type Option func(*Config)

// WithDefaultParallelism sets Config.DefaultParallelism.
func WithDefaultParallelism(n uint32) Option {
	return func(c *Config) { c.DefaultParallelism = n }
}

// WithSampleSizeCap sets Config.SampleSizeCap.
func WithSampleSizeCap(n uint64) Option {
	return func(c *Config) { c.SampleSizeCap = n }
}

// WithSampleSizeMultiplier sets Config.SampleSizeMultiplier.
func WithSampleSizeMultiplier(n uint32) Option {
	return func(c *Config) { c.SampleSizeMultiplier = n }
}

// WithOverSampleFactor sets Config.OverSampleFactor.
func WithOverSampleFactor(f float32) Option {
	return func(c *Config) { c.OverSampleFactor = f }
}

// NewConfig returns the spec.md §6 defaults with opts applied.
func NewConfig(opts ...Option) Config {
	c := Config{
		DefaultParallelism:   1,
		SampleSizeCap:        1_000_000,
		SampleSizeMultiplier: 20,
		OverSampleFactor:     3.0,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
