package projfactors

// Option configures a pipeline invocation.
// Use functional options to customize Run behavior.
//
// Example:
//
//	// Default: host-delegated evaluator, temporary output directory
//	layer, err := projfactors.Run(h)
//
//	// Direct PROJ backend (dependency injection)
//	layer, err := projfactors.Run(h, projfactors.WithEvaluator(projlib.New()))
type Option func(*runOptions)

// runOptions holds optional configuration for one invocation.
type runOptions struct {
	evaluator FactorEvaluator
	outputDir string
	layerName string
}

// defaultRunOptions returns the default invocation options.
func defaultRunOptions() runOptions {
	return runOptions{
		evaluator: nil, // host-delegated evaluator if nil
		outputDir: "",  // temporary directory if empty
	}
}

// WithEvaluator sets the factor evaluator for the invocation. Use this to
// inject the direct PROJ backend or a custom engine. The backend-selection
// switch from the host settings only applies when no evaluator is given.
func WithEvaluator(e FactorEvaluator) Option {
	return func(o *runOptions) {
		o.evaluator = e
	}
}

// WithOutputDir sets the directory the GeoTIFF and VRT are written to.
// By default each invocation writes into a fresh temporary directory.
func WithOutputDir(dir string) Option {
	return func(o *runOptions) {
		o.outputDir = dir
	}
}

// WithLayerName overrides the generated layer display name.
func WithLayerName(name string) Option {
	return func(o *runOptions) {
		o.layerName = name
	}
}
