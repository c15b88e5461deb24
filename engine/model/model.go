package model

import (
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/material"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	mesh                  Mesh
	renderMaterials       []material.Material
	meshProvider          bind_group_provider.BindGroupProvider
	vertexData, indexData []byte
	indexCount            int
}

// Model is a GPU-ready mesh plus the materials it is drawn with.
// The vertex and index payloads are packed once at construction; the mesh provider
// is filled in by the Renderer when the buffers are uploaded.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Mesh returns the source mesh.
	//
	// Returns:
	//   - Mesh: the mesh the buffers were packed from
	Mesh() Mesh

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider, or nil before upload
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider stores the provider holding the uploaded vertex, index and instance buffers.
	//
	// Parameters:
	//   - provider: the mesh provider
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)

	// VertexData returns the packed vertex buffer payload.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the packed index buffer payload.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// RenderMaterials retrieves the render-ready materials for this model.
	//
	// Returns:
	//   - []material.Material: the render-ready materials
	RenderMaterials() []material.Material
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// When a mesh is supplied, its vertex and index buffers are packed.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if len(m.mesh.Vertices) > 0 {
		m.vertexData = m.mesh.VertexData()
		m.indexData = m.mesh.IndexData()
		m.indexCount = len(m.mesh.Indices)
	}
	if m.name == "" {
		m.name = m.mesh.Name
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Mesh() Mesh {
	return m.mesh
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) RenderMaterials() []material.Material {
	return m.renderMaterials
}
