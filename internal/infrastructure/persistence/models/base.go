package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// AggregateModel adds the optimistic-lock version to BaseModel
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// BusinessAggregateModel provides the persistence fields of a business-scoped aggregate root
type BusinessAggregateModel struct {
	AggregateModel
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainBusinessAggregateRoot populates the model from a domain aggregate root
func (m *BusinessAggregateModel) FromDomainBusinessAggregateRoot(a shared.BusinessAggregateRoot) {
	m.fromDomainAggregateRoot(a)
	m.BusinessID = a.BusinessID
}

// ToDomainBusinessAggregateRoot rebuilds the domain aggregate root
func (m *BusinessAggregateModel) ToDomainBusinessAggregateRoot() shared.BusinessAggregateRoot {
	return m.toDomainBusinessAggregateRoot(m.BusinessID)
}

// fromDomainAggregateRoot copies identity and version. Models that declare
// their own BusinessID column (to index it with other fields) use it directly.
func (m *AggregateModel) fromDomainAggregateRoot(a shared.BusinessAggregateRoot) {
	m.ID = a.ID
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Version = a.Version
}

func (m *AggregateModel) toDomainBusinessAggregateRoot(businessID uuid.UUID) shared.BusinessAggregateRoot {
	return shared.BusinessAggregateRoot{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		BusinessID: businessID,
	}
}
