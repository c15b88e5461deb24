package mobile

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-mobile/common"
)

// MaxInstances is the capacity of the instance array. The mobile structure emits exactly this many records.
const MaxInstances = 24

// Object type tags carried per instance. The fragment shader selects its texture blend from them.
const (
	ObjectTypeBase      uint32 = 0
	ObjectTypeConnector uint32 = 1
	// Satellite cubes use ObjectTypeSatelliteFirst through ObjectTypeSatelliteLast.
	ObjectTypeSatelliteFirst uint32 = 3
	ObjectTypeSatelliteLast  uint32 = 8
)

// InstanceRecord describes one drawn copy of the cube mesh.
type InstanceRecord struct {
	Transform  common.Mat4
	ObjectType uint32
}

// AnimationState holds the three accumulated rotation angles in radians.
type AnimationState struct {
	Main       float32
	FirstTier  float32
	SecondTier float32
}

// AnimationRates holds the per-frame angle increments in radians.
type AnimationRates struct {
	Main       float32
	FirstTier  float32
	SecondTier float32
}

// DefaultAnimationRates returns the stock increments: 0.003, 0.005 and 0.007 rad/frame.
//
// Returns:
//   - AnimationRates: the default rates
func DefaultAnimationRates() AnimationRates {
	return AnimationRates{Main: 0.003, FirstTier: 0.005, SecondTier: 0.007}
}

// Validate checks that the rates satisfy SecondTier >= FirstTier >= Main >= 0.
//
// Returns:
//   - error: a description of the violated ordering, or nil
func (r AnimationRates) Validate() error {
	if r.Main < 0 {
		return fmt.Errorf("main rate %v is negative", r.Main)
	}
	if r.FirstTier < r.Main {
		return fmt.Errorf("first tier rate %v is below main rate %v", r.FirstTier, r.Main)
	}
	if r.SecondTier < r.FirstTier {
		return fmt.Errorf("second tier rate %v is below first tier rate %v", r.SecondTier, r.FirstTier)
	}
	return nil
}

// Generator builds the per-frame instance array of the mobile sculpture.
// Each call to GenerateInstances advances the animation by one frame.
type Generator interface {
	// GenerateInstances advances the three animation angles by their rates and
	// returns a freshly built record array in draw order.
	// Panics if the structure would exceed the generator's capacity.
	//
	// Returns:
	//   - []InstanceRecord: the records for this frame (24 for the stock structure)
	GenerateInstances() []InstanceRecord

	// Angles returns the current animation angles.
	//
	// Returns:
	//   - AnimationState: a copy of the angles
	Angles() AnimationState

	// Rates returns the per-frame angle increments.
	//
	// Returns:
	//   - AnimationRates: the configured rates
	Rates() AnimationRates

	// Capacity returns the maximum number of records a frame may hold.
	//
	// Returns:
	//   - int: the capacity
	Capacity() int

	// Reset zeroes the animation angles.
	Reset()
}

type generatorImpl struct {
	mu *sync.Mutex

	rates    AnimationRates
	state    AnimationState
	capacity int
}

var _ Generator = &generatorImpl{}

// NewGenerator creates a Generator with the default rates and MaxInstances capacity.
// Panics if the configured rates violate SecondTier >= FirstTier >= Main >= 0, or if the capacity is not positive.
//
// Parameters:
//   - options: functional options to configure the generator
//
// Returns:
//   - Generator: the new generator
func NewGenerator(options ...GeneratorBuilderOption) Generator {
	g := &generatorImpl{
		mu:       &sync.Mutex{},
		rates:    DefaultAnimationRates(),
		capacity: MaxInstances,
	}

	for _, option := range options {
		option(g)
	}

	if err := g.rates.Validate(); err != nil {
		panic(fmt.Sprintf("mobile: invalid animation rates: %v", err))
	}
	if g.capacity <= 0 {
		panic(fmt.Sprintf("mobile: capacity must be positive, got %d", g.capacity))
	}
	return g
}

// mobile layout, local to each tier
var (
	firstTierCubeOffsets = [4][3]float32{{3, 2, 0}, {-3, 2, 0}, {0, 2, 3}, {0, 2, -3}}
	firstTierCubeTypes   = [4]uint32{3, 4, 5, 6}

	connectorOffsets = [4][3]float32{{0, 0.85, 3}, {0, 0.85, -3}, {3, 0.85, 0}, {-3, 0.85, 0}}

	secondTierArmScales  = [4][3]float32{{2, 0.1, 0.1}, {2, 0.1, 0.1}, {0.1, 0.1, 2}, {0.1, 0.1, 2}}
	secondTierArmOffsets = [4][3]float32{{0, 0.2, 3}, {0, 0.2, -3}, {3, 0.2, 0}, {-3, 0.2, 0}}

	secondTierCubeOffsets = [8][3]float32{
		{1, -0.4, 3}, {-1, -0.4, 3}, {1, -0.4, -3}, {-1, -0.4, -3},
		{3, -0.4, 1}, {3, -0.4, -1}, {-3, -0.4, 1}, {-3, -0.4, -1},
	}
)

const cubeScale = 0.6

func (g *generatorImpl) GenerateInstances() []InstanceRecord {
	g.mu.Lock()
	g.state.Main += g.rates.Main
	g.state.FirstTier += g.rates.FirstTier
	g.state.SecondTier += g.rates.SecondTier
	angles := g.state
	capacity := g.capacity
	g.mu.Unlock()

	b := &recordBuilder{records: make([]InstanceRecord, 0, capacity), capacity: capacity}

	mainTier := common.RotationY(angles.Main)
	firstTier := mainTier.Then(common.RotationY(angles.FirstTier))
	secondTier := firstTier.Then(common.RotationY(angles.SecondTier))

	// static plate and pole
	b.emit(common.Scale(1.6, 0.1, 1.6).Then(common.Translation(0, 4.8, 0)), ObjectTypeBase)
	b.emit(common.Scale(0.1, 1.0, 0.1).Then(common.Translation(0, 3.65, 0)), ObjectTypeConnector)

	b.emit(common.Chain(common.Scale(3.6, 0.1, 0.1), common.Translation(0, 2.6, 0), firstTier), ObjectTypeConnector)
	b.emit(common.Chain(common.Scale(0.1, 0.1, 3.6), common.Translation(0, 2.6, 0), firstTier), ObjectTypeConnector)

	for i, o := range firstTierCubeOffsets {
		local := common.UniformScale(cubeScale).Then(common.Translation(o[0], o[1], o[2]))
		b.emit(local.Then(firstTier), firstTierCubeTypes[i%len(firstTierCubeTypes)])
	}

	for _, o := range connectorOffsets {
		local := common.Scale(0.1, 0.85, 0.1).Then(common.Translation(o[0], o[1], o[2]))
		b.emit(local.Then(secondTier), ObjectTypeConnector)
	}

	for i, s := range secondTierArmScales {
		o := secondTierArmOffsets[i]
		local := common.Scale(s[0], s[1], s[2]).Then(common.Translation(o[0], o[1], o[2]))
		b.emit(local.Then(secondTier), ObjectTypeConnector)
	}

	for i, o := range secondTierCubeOffsets {
		local := common.UniformScale(cubeScale).Then(common.Translation(o[0], o[1], o[2]))
		b.emit(local.Then(secondTier), ObjectTypeSatelliteFirst+uint32(i%6))
	}

	return b.records
}

func (g *generatorImpl) Angles() AnimationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *generatorImpl) Rates() AnimationRates {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rates
}

func (g *generatorImpl) Capacity() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.capacity
}

func (g *generatorImpl) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = AnimationState{}
}

// recordBuilder appends records and enforces the capacity before each write.
type recordBuilder struct {
	records  []InstanceRecord
	capacity int
}

func (b *recordBuilder) emit(transform common.Mat4, objectType uint32) {
	if len(b.records) >= b.capacity {
		panic(fmt.Sprintf("mobile: instance capacity %d exceeded", b.capacity))
	}
	b.records = append(b.records, InstanceRecord{Transform: transform, ObjectType: objectType})
}

// GlobalRotation returns the whole-scene rotation for the given elapsed time:
// RotationY(t*rateY) followed by RotationX(-t*rateX). Zero rates give the identity.
//
// Parameters:
//   - t: elapsed time in seconds
//   - rateY: rotation rate about Y in rad/s
//   - rateX: rotation rate about X in rad/s
//
// Returns:
//   - common.Mat4: the global rotation matrix
func GlobalRotation(t, rateY, rateX float32) common.Mat4 {
	return common.RotationY(t * rateY).Then(common.RotationX(-t * rateX))
}
