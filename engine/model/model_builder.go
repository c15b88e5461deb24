package model

import "github.com/Carmen-Shannon/oxy-mobile/engine/renderer/material"

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMesh is an option builder that sets the mesh the vertex and index buffers are packed from.
//
// Parameters:
//   - mesh: the source mesh
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(mesh Mesh) ModelBuilderOption {
	return func(m *model) {
		m.mesh = mesh
	}
}

// WithRenderMaterials is an option builder that sets the render-ready materials for the Model.
//
// Parameters:
//   - mats: the render-ready materials to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the render materials option to a model
func WithRenderMaterials(mats ...material.Material) ModelBuilderOption {
	return func(m *model) {
		m.renderMaterials = mats
	}
}
