package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/maintenance"
	"github.com/shopspring/decimal"
)

// MaintenanceRequestModel is the persistence model for maintenance requests
type MaintenanceRequestModel struct {
	BusinessAggregateModel
	UnitID        uuid.UUID            `gorm:"type:uuid;not null;index"`
	TenantID      *uuid.UUID           `gorm:"type:uuid;index"`
	Title         string               `gorm:"type:varchar(200);not null"`
	Description   string               `gorm:"type:text"`
	Priority      maintenance.Priority `gorm:"type:varchar(20);not null;default:'medium'"`
	Status        maintenance.Status   `gorm:"type:varchar(20);not null;default:'pending';index"`
	AssignedTo    string               `gorm:"type:varchar(200)"`
	EstimatedCost decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	ActualCost    decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	ScheduledDate *time.Time
	CompletedDate *time.Time
	Images        []string `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (MaintenanceRequestModel) TableName() string {
	return "maintenance_requests"
}

// ToDomain converts the persistence model to a domain Request
func (m *MaintenanceRequestModel) ToDomain() *maintenance.Request {
	return &maintenance.Request{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		UnitID:                m.UnitID,
		TenantID:              m.TenantID,
		Title:                 m.Title,
		Description:           m.Description,
		Priority:              m.Priority,
		Status:                m.Status,
		AssignedTo:            m.AssignedTo,
		EstimatedCost:         m.EstimatedCost,
		ActualCost:            m.ActualCost,
		ScheduledDate:         m.ScheduledDate,
		CompletedDate:         m.CompletedDate,
		Images:                nonNilStrings(m.Images),
	}
}

// FromDomain populates the persistence model from a domain Request
func (m *MaintenanceRequestModel) FromDomain(r *maintenance.Request) {
	m.FromDomainBusinessAggregateRoot(r.BusinessAggregateRoot)
	m.UnitID = r.UnitID
	m.TenantID = r.TenantID
	m.Title = r.Title
	m.Description = r.Description
	m.Priority = r.Priority
	m.Status = r.Status
	m.AssignedTo = r.AssignedTo
	m.EstimatedCost = r.EstimatedCost
	m.ActualCost = r.ActualCost
	m.ScheduledDate = r.ScheduledDate
	m.CompletedDate = r.CompletedDate
	m.Images = nonNilStrings(r.Images)
}

// MaintenanceRequestModelFromDomain creates a new persistence model from a domain Request
func MaintenanceRequestModelFromDomain(r *maintenance.Request) *MaintenanceRequestModel {
	m := &MaintenanceRequestModel{}
	m.FromDomain(r)
	return m
}

// AllModels lists every model, in dependency order, for AutoMigrate in tests
func AllModels() []any {
	return []any{
		&LandlordModel{},
		&PropertyModel{},
		&UtilityModel{},
		&UnitModel{},
		&UnitUtilityModel{},
		&TenantModel{},
		&LeaseModel{},
		&RentPaymentModel{},
		&ReceiptSequenceModel{},
		&MaintenanceRequestModel{},
		&ExpenseModel{},
		&NotificationModel{},
	}
}
