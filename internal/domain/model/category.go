package model

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	minCategoryNameLength = 3
	maxCategoryNameLength = 255
)

// Category groups videos by theme (e.g. "Documentary").
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory creates an active category with a fresh identity and equal
// created/updated timestamps.
func NewCategory(name, description string, active bool) *Category {
	now := time.Now()
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate appends one error per violated invariant.
func (c *Category) Validate(n *Notification) {
	validateName(n, c.Name, minCategoryNameLength, maxCategoryNameLength)
}

// Update replaces the descriptive fields and refreshes UpdatedAt.
func (c *Category) Update(name, description string, active bool) {
	c.Name = name
	c.Description = description
	c.Active = active
	c.UpdatedAt = time.Now()
}

// Activate marks the category usable again.
func (c *Category) Activate() {
	c.Active = true
	c.UpdatedAt = time.Now()
}

// Deactivate hides the category without removing it.
func (c *Category) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
}

func validateName(n *Notification, name string, minLen, maxLen int) {
	if name == "" {
		n.Append(Error{Message: "'name' should not be empty"})
		return
	}
	if count := utf8.RuneCountInString(name); count < minLen || count > maxLen {
		n.Append(Error{Message: fmt.Sprintf("'name' must be between %d and %d characters", minLen, maxLen)})
	}
}
