package mobile

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-mobile/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translationOf(r InstanceRecord) (float32, float32, float32) {
	return r.Transform.TransformPoint(0, 0, 0)
}

func TestGenerateInstancesShape(t *testing.T) {
	g := NewGenerator()
	for tick := 0; tick < 50; tick++ {
		records := g.GenerateInstances()
		require.Len(t, records, MaxInstances)
		assert.Equal(t, ObjectTypeBase, records[0].ObjectType)

		for i := 1; i < 4; i++ {
			assert.Equal(t, ObjectTypeConnector, records[i].ObjectType, "record %d", i)
		}
		for i := 8; i < 16; i++ {
			assert.Equal(t, ObjectTypeConnector, records[i].ObjectType, "record %d", i)
		}
		for _, i := range []int{4, 5, 6, 7, 16, 17, 18, 19, 20, 21, 22, 23} {
			typ := records[i].ObjectType
			assert.GreaterOrEqual(t, typ, ObjectTypeSatelliteFirst, "record %d", i)
			assert.LessOrEqual(t, typ, ObjectTypeSatelliteLast, "record %d", i)
		}
	}
}

func TestSatelliteTypePalettes(t *testing.T) {
	records := NewGenerator().GenerateInstances()

	var first []uint32
	for _, r := range records[4:8] {
		first = append(first, r.ObjectType)
	}
	assert.Equal(t, []uint32{3, 4, 5, 6}, first)

	var second []uint32
	for _, r := range records[16:24] {
		second = append(second, r.ObjectType)
	}
	assert.Equal(t, []uint32{3, 4, 5, 6, 7, 8, 3, 4}, second)
}

func TestStaticRecordsIgnoreRotation(t *testing.T) {
	g := NewGenerator()
	a := g.GenerateInstances()
	for range 100 {
		g.GenerateInstances()
	}
	b := g.GenerateInstances()

	assert.Equal(t, a[0].Transform, b[0].Transform)
	assert.Equal(t, a[1].Transform, b[1].Transform)

	plate := a[0].Transform
	assert.InDelta(t, 1.6, plate[0], 1e-6)
	assert.InDelta(t, 0.1, plate[5], 1e-6)
	assert.InDelta(t, 1.6, plate[10], 1e-6)
	assert.InDelta(t, 4.8, plate[13], 1e-6)

	pole := a[1].Transform
	assert.InDelta(t, 1.0, pole[5], 1e-6)
	assert.InDelta(t, 3.65, pole[13], 1e-6)
}

func TestTierRotationComposition(t *testing.T) {
	g := NewGenerator()
	records := g.GenerateInstances()
	angles := g.Angles()

	first := angles.Main + angles.FirstTier
	second := first + angles.SecondTier

	// RotationY maps (x, y, z) to (x*cos + z*sin, y, z*cos - x*sin)
	s, c := math32.Sincos(first)
	x, y, z := translationOf(records[4])
	assert.InDelta(t, 3*c, x, 1e-5)
	assert.InDelta(t, 2, y, 1e-5)
	assert.InDelta(t, -3*s, z, 1e-5)

	s, c = math32.Sincos(second)
	x, y, z = translationOf(records[16])
	assert.InDelta(t, 1*c+3*s, x, 1e-5)
	assert.InDelta(t, -0.4, y, 1e-5)
	assert.InDelta(t, 3*c-1*s, z, 1e-5)

	// scale is applied in local space, before the tier rotation
	cube := records[4].Transform
	colLen := math32.Sqrt(cube[0]*cube[0] + cube[1]*cube[1] + cube[2]*cube[2])
	assert.InDelta(t, 0.6, colLen, 1e-5)
}

func TestAnglesAdvanceAndStayOrdered(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, AnimationState{}, g.Angles())

	for n := 1; n <= 500; n++ {
		g.GenerateInstances()
		a := g.Angles()
		require.GreaterOrEqual(t, a.SecondTier, a.FirstTier)
		require.GreaterOrEqual(t, a.FirstTier, a.Main)
		require.GreaterOrEqual(t, a.Main, float32(0))
	}

	a := g.Angles()
	assert.InDelta(t, 500*0.003, a.Main, 1e-4)
	assert.InDelta(t, 500*0.005, a.FirstTier, 1e-4)
	assert.InDelta(t, 500*0.007, a.SecondTier, 1e-4)

	g.Reset()
	assert.Equal(t, AnimationState{}, g.Angles())
}

func TestEqualRatesKeepAnglesEqual(t *testing.T) {
	g := NewGenerator(WithRates(AnimationRates{Main: 0.01, FirstTier: 0.01, SecondTier: 0.01}))
	for range 10 {
		g.GenerateInstances()
	}
	a := g.Angles()
	assert.Equal(t, a.Main, a.FirstTier)
	assert.Equal(t, a.FirstTier, a.SecondTier)
}

func TestInvalidRatesPanic(t *testing.T) {
	tests := []struct {
		name  string
		rates AnimationRates
	}{
		{"negative main", AnimationRates{Main: -0.1, FirstTier: 0, SecondTier: 0}},
		{"first below main", AnimationRates{Main: 0.01, FirstTier: 0.005, SecondTier: 0.02}},
		{"second below first", AnimationRates{Main: 0.001, FirstTier: 0.005, SecondTier: 0.004}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.rates.Validate())
			assert.Panics(t, func() { NewGenerator(WithRates(tt.rates)) })
		})
	}
	assert.NoError(t, DefaultAnimationRates().Validate())
}

func TestCapacityOverflowPanics(t *testing.T) {
	g := NewGenerator(WithCapacity(MaxInstances - 1))
	assert.PanicsWithValue(t, "mobile: instance capacity 23 exceeded", func() {
		g.GenerateInstances()
	})
	assert.Panics(t, func() { NewGenerator(WithCapacity(0)) })

	roomy := NewGenerator(WithCapacity(64))
	assert.Len(t, roomy.GenerateInstances(), MaxInstances)
}

func TestInitialAngles(t *testing.T) {
	g := NewGenerator(WithInitialAngles(AnimationState{Main: 1, FirstTier: 2, SecondTier: 3}))
	g.GenerateInstances()
	a := g.Angles()
	assert.InDelta(t, 1.003, a.Main, 1e-6)
	assert.InDelta(t, 2.005, a.FirstTier, 1e-6)
	assert.InDelta(t, 3.007, a.SecondTier, 1e-6)
}

func TestMarshalInstances(t *testing.T) {
	assert.Nil(t, MarshalInstances(nil))

	records := NewGenerator().GenerateInstances()
	buf := MarshalInstances(records)
	require.Len(t, buf, GPUInstanceSize*len(records))

	var inst GPUInstance
	assert.Equal(t, GPUInstanceSize, inst.Size())

	assert.Equal(t, math.Float32bits(1.6), binary.LittleEndian.Uint32(buf[0:]))
	assert.Equal(t, ObjectTypeBase, binary.LittleEndian.Uint32(buf[64:]))
	assert.Equal(t, ObjectTypeConnector, binary.LittleEndian.Uint32(buf[GPUInstanceSize+64:]))

	last := buf[23*GPUInstanceSize:]
	assert.Equal(t, records[23].ObjectType, binary.LittleEndian.Uint32(last[64:]))
	assert.Equal(t, math.Float32bits(records[23].Transform[12]), binary.LittleEndian.Uint32(last[48:]))

	single := (&GPUInstance{Transform: records[5].Transform, ObjectType: records[5].ObjectType}).Marshal()
	assert.Equal(t, buf[5*GPUInstanceSize:6*GPUInstanceSize], single)
}

func TestGlobalRotation(t *testing.T) {
	assert.Equal(t, common.Identity4(), GlobalRotation(12.5, 0, 0))

	m := GlobalRotation(1, 0.5, 0)
	x, _, z := m.TransformPoint(1, 0, 0)
	assert.InDelta(t, math32.Cos(0.5), x, 1e-6)
	assert.InDelta(t, -math32.Sin(0.5), z, 1e-6)
}
