package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CastMemberType distinguishes the role a person plays in a production.
type CastMemberType string

const (
	CastMemberTypeActor    CastMemberType = "ACTOR"
	CastMemberTypeDirector CastMemberType = "DIRECTOR"
)

func (t CastMemberType) IsValid() bool {
	return t == CastMemberTypeActor || t == CastMemberTypeDirector
}

func (t CastMemberType) String() string {
	return string(t)
}

const (
	minCastMemberNameLength = 3
	maxCastMemberNameLength = 255
)

// CastMember is a person credited on videos.
type CastMember struct {
	ID        uuid.UUID
	Name      string
	Type      CastMemberType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCastMember creates a cast member with a fresh identity and equal timestamps.
func NewCastMember(name string, memberType CastMemberType) *CastMember {
	now := time.Now()
	return &CastMember{
		ID:        uuid.New(),
		Name:      name,
		Type:      memberType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate appends one error per violated invariant.
func (m *CastMember) Validate(n *Notification) {
	validateName(n, m.Name, minCastMemberNameLength, maxCastMemberNameLength)
	if !m.Type.IsValid() {
		n.Append(Error{Message: fmt.Sprintf("'type' %q is not a known cast member type", m.Type)})
	}
}

// Update replaces name and type, refreshing UpdatedAt.
func (m *CastMember) Update(name string, memberType CastMemberType) {
	m.Name = name
	m.Type = memberType
	m.UpdatedAt = time.Now()
}
