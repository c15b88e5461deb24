package mobile

// GeneratorBuilderOption is a functional option for configuring a Generator.
type GeneratorBuilderOption func(*generatorImpl)

// WithRates sets the per-frame angle increments.
// NewGenerator panics if the rates do not satisfy SecondTier >= FirstTier >= Main >= 0.
//
// Parameters:
//   - rates: the increments in radians per frame
//
// Returns:
//   - GeneratorBuilderOption: option function to apply
func WithRates(rates AnimationRates) GeneratorBuilderOption {
	return func(g *generatorImpl) {
		g.rates = rates
	}
}

// WithInitialAngles sets the starting animation angles.
//
// Parameters:
//   - state: the initial angles in radians
//
// Returns:
//   - GeneratorBuilderOption: option function to apply
func WithInitialAngles(state AnimationState) GeneratorBuilderOption {
	return func(g *generatorImpl) {
		g.state = state
	}
}

// WithCapacity overrides the record capacity (MaxInstances by default).
// A capacity smaller than the structure makes GenerateInstances panic.
//
// Parameters:
//   - capacity: the maximum number of records per frame
//
// Returns:
//   - GeneratorBuilderOption: option function to apply
func WithCapacity(capacity int) GeneratorBuilderOption {
	return func(g *generatorImpl) {
		g.capacity = capacity
	}
}
