// Package model defines the data structures for organizations, components and branches.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ComponentType distinguishes plain components from aggregating products.
type ComponentType string

// Component types.
const (
	ComponentTypeComponent ComponentType = "COMPONENT"
	ComponentTypeProduct   ComponentType = "PRODUCT"
)

// Org represents an organization in the system
type Org struct {
	UUID        uuid.UUID `json:"_key"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Component is a deliverable owned by exactly one organization.
type Component struct {
	UUID uuid.UUID     `json:"_key"`
	Name string        `json:"name"`
	Org  uuid.UUID     `json:"org"`
	Type ComponentType `json:"type"`
	// Perspectives lists the visibility perspectives the component belongs to.
	Perspectives []uuid.UUID `json:"perspectives,omitempty"`
}

// InPerspective reports whether the component is visible from perspective.
// A nil perspective sees every component of the organization.
func (c Component) InPerspective(perspective *uuid.UUID) bool {
	if perspective == nil {
		return true
	}
	for _, p := range c.Perspectives {
		if p == *perspective {
			return true
		}
	}
	return false
}

// Branch is an ordered lineage of releases within a component.
type Branch struct {
	UUID      uuid.UUID `json:"_key"`
	Name      string    `json:"name"`
	Component uuid.UUID `json:"component"`
}
