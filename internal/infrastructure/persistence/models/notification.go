package models

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/notification"
)

// NotificationModel is the persistence model for notifications
type NotificationModel struct {
	BusinessAggregateModel
	RecipientID *uuid.UUID            `gorm:"type:uuid;index"`
	Type        notification.Type     `gorm:"type:varchar(30);not null;index"`
	Title       string                `gorm:"type:varchar(200);not null"`
	Message     string                `gorm:"type:text;not null"`
	RelatedID   *uuid.UUID            `gorm:"type:uuid"`
	RelatedType string                `gorm:"type:varchar(50)"`
	IsRead      bool                  `gorm:"not null;default:false;index"`
	Priority    notification.Priority `gorm:"type:varchar(20);not null;default:'medium'"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		RecipientID:           m.RecipientID,
		Type:                  m.Type,
		Title:                 m.Title,
		Message:               m.Message,
		RelatedID:             m.RelatedID,
		RelatedType:           m.RelatedType,
		IsRead:                m.IsRead,
		Priority:              m.Priority,
	}
}

// FromDomain populates the persistence model from a domain Notification
func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainBusinessAggregateRoot(n.BusinessAggregateRoot)
	m.RecipientID = n.RecipientID
	m.Type = n.Type
	m.Title = n.Title
	m.Message = n.Message
	m.RelatedID = n.RelatedID
	m.RelatedType = n.RelatedType
	m.IsRead = n.IsRead
	m.Priority = n.Priority
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}
