// Package model defines the persisted records (Scientist, Planet, Mission)
// and the projections used to serialize them.
//
// Records serialize flat. Relationships are only included through explicit
// projection types such as ScientistDetail, so a cycle between a scientist
// and its missions cannot be expressed.
package model
