package app

import (
	"github.com/pychain/forge/domain/catalog"
	"github.com/pychain/forge/domain/selection"
)

// CatalogService exposes read-only catalog queries and the selection toggle
// contract to the API and CLI.
type CatalogService struct {
	reg *catalog.Registry
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(reg *catalog.Registry) *CatalogService {
	return &CatalogService{reg: reg}
}

// Archetypes returns all archetypes in catalog order.
func (s *CatalogService) Archetypes() []catalog.Archetype {
	return s.reg.Archetypes()
}

// Modules returns all modules in catalog order.
func (s *CatalogService) Modules() []catalog.Module {
	return s.reg.Modules()
}

// ModulesFor returns the modules compatible with an archetype.
func (s *CatalogService) ModulesFor(archetypeID string) []catalog.Module {
	return s.reg.ListCompatible(archetypeID)
}

// Toggle applies the selection toggle contract and returns the new selection.
func (s *CatalogService) Toggle(selected []string, id string) []string {
	return selection.Toggle(s.reg, selected, id)
}

// FindConflicts returns conflicting pairs jointly present in a selection.
func (s *CatalogService) FindConflicts(selected []string) []selection.ConflictPair {
	return selection.FindConflicts(s.reg, selected)
}
