package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("Viewport Constants")
	assert.Equal(t, "Viewport Constants", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView(1))
	assert.Nil(t, p.Sampler(4))
	assert.Nil(t, p.InstanceBuffer())
	assert.Zero(t, p.InstanceCapacity())
}

func TestMeshState(t *testing.T) {
	p := NewBindGroupProvider("Cube Mesh")
	p.SetIndexCount(36)
	p.SetInstanceBuffer(nil, 24)
	assert.Equal(t, 36, p.IndexCount())
	assert.Equal(t, 24, p.InstanceCapacity())
}

func TestReleaseWithoutGPUResources(t *testing.T) {
	p := NewBindGroupProvider("Material")
	p.SetBuffer(0, nil)
	p.SetTextureView(1, nil)
	p.SetSampler(4, nil)

	assert.NotPanics(t, p.Release)
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.VertexBuffer())
}
