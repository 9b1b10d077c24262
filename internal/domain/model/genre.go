package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	minGenreNameLength = 1
	maxGenreNameLength = 255
)

// Genre classifies videos (e.g. "Drama") and may reference categories.
type Genre struct {
	ID         uuid.UUID
	Name       string
	Active     bool
	Categories []uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewGenre creates a genre with a fresh identity and equal timestamps.
func NewGenre(name string, active bool, categories []uuid.UUID) *Genre {
	now := time.Now()
	return &Genre{
		ID:         uuid.New(),
		Name:       name,
		Active:     active,
		Categories: categories,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate appends one error per violated invariant.
func (g *Genre) Validate(n *Notification) {
	validateName(n, g.Name, minGenreNameLength, maxGenreNameLength)
}

// Update replaces name, active flag and category references.
func (g *Genre) Update(name string, active bool, categories []uuid.UUID) {
	g.Name = name
	g.Active = active
	g.Categories = categories
	g.UpdatedAt = time.Now()
}

// AddCategory appends a category reference if not already present.
func (g *Genre) AddCategory(categoryID uuid.UUID) {
	for _, id := range g.Categories {
		if id == categoryID {
			return
		}
	}
	g.Categories = append(g.Categories, categoryID)
	g.UpdatedAt = time.Now()
}
