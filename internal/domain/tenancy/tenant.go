package tenancy

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TenantStatus represents where a renter is in their tenancy
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
	TenantStatusOverdue  TenantStatus = "overdue"
	TenantStatusEvicted  TenantStatus = "evicted"
	TenantStatusMovedOut TenantStatus = "moved_out"
)

// IsValid reports whether s is a known tenant status
func (s TenantStatus) IsValid() bool {
	switch s {
	case TenantStatusActive, TenantStatusInactive, TenantStatusOverdue,
		TenantStatusEvicted, TenantStatusMovedOut:
		return true
	}
	return false
}

// PaymentMethod is how a tenant usually pays
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
)

// IsValid reports whether m is a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodMobileMoney, PaymentMethodCash,
		PaymentMethodCheck, PaymentMethodCreditCard:
		return true
	}
	return false
}

// EmergencyContact is a person to call on the tenant's behalf
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// StatusTransition classifies the side effects of a status change
type StatusTransition int

const (
	// TransitionNone leaves the tenant untouched
	TransitionNone StatusTransition = iota
	// TransitionPlain only rewrites the status field
	TransitionPlain
	// TransitionMoveOut vacates the bound unit
	TransitionMoveOut
	// TransitionReactivate re-occupies the bound unit
	TransitionReactivate
)

// Tenant is a renter bound to a unit. Balance is what they owe: positive
// means arrears, zero or negative means paid up or in credit.
type Tenant struct {
	shared.BusinessAggregateRoot
	UnitID           uuid.UUID
	Name             string
	Phone            string
	Email            string
	IDNumber         string
	Rent             decimal.Decimal
	Balance          decimal.Decimal
	Status           TenantStatus
	PaymentMethod    PaymentMethod
	MoveInDate       time.Time
	MoveOutDate      *time.Time
	EmergencyContact EmergencyContact
	Documents        []string
}

// NewTenant creates an active tenant for unitID
func NewTenant(businessID, unitID uuid.UUID, name, phone, idNumber string, rent decimal.Decimal, moveIn time.Time) (*Tenant, error) {
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unit is required")
	}
	if err := validateTenantName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(phone) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Phone cannot be empty")
	}
	if strings.TrimSpace(idNumber) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "ID number cannot be empty")
	}
	if rent.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Rent cannot be negative")
	}
	if moveIn.IsZero() {
		moveIn = time.Now()
	}

	t := &Tenant{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		UnitID:                unitID,
		Name:                  strings.TrimSpace(name),
		Phone:                 strings.TrimSpace(phone),
		IDNumber:              strings.TrimSpace(idNumber),
		Rent:                  rent,
		Balance:               decimal.Zero,
		Status:                TenantStatusActive,
		PaymentMethod:         PaymentMethodBankTransfer,
		MoveInDate:            moveIn,
		Documents:             []string{},
	}
	t.AddDomainEvent(NewTenantCreatedEvent(t))
	return t, nil
}

// HasUnit reports whether the tenant is bound to a unit
func (t *Tenant) HasUnit() bool {
	return t.UnitID != uuid.Nil
}

// Profile holds the editable personal and billing details of a tenant
type Profile struct {
	Name             string
	Phone            string
	Email            string
	EmergencyContact EmergencyContact
	Rent             decimal.Decimal
	PaymentMethod    PaymentMethod
}

// Profile returns the current editable details
func (t *Tenant) Profile() Profile {
	return Profile{
		Name:             t.Name,
		Phone:            t.Phone,
		Email:            t.Email,
		EmergencyContact: t.EmergencyContact,
		Rent:             t.Rent,
		PaymentMethod:    t.PaymentMethod,
	}
}

// Update replaces the editable details in one change
func (t *Tenant) Update(p Profile) error {
	if err := validateTenantName(p.Name); err != nil {
		return err
	}
	if strings.TrimSpace(p.Phone) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Phone cannot be empty")
	}
	if err := validateEmail(p.Email); err != nil {
		return err
	}
	if p.Rent.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Rent cannot be negative")
	}
	if !p.PaymentMethod.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid payment method: %s", p.PaymentMethod)
	}
	t.Name = strings.TrimSpace(p.Name)
	t.Phone = strings.TrimSpace(p.Phone)
	t.Email = p.Email
	t.EmergencyContact = p.EmergencyContact
	t.Rent = p.Rent
	t.PaymentMethod = p.PaymentMethod
	t.Touch()
	return nil
}

// SetEmail sets the contact email; an empty address clears it
func (t *Tenant) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	t.Email = email
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "Invalid email format")
	}
	return nil
}

// UpdateContact replaces name and contact details
func (t *Tenant) UpdateContact(name, phone, email string, contact EmergencyContact) error {
	p := t.Profile()
	p.Name, p.Phone, p.Email, p.EmergencyContact = name, phone, email, contact
	return t.Update(p)
}

// ApplyPayment credits a confirmed rent payment. An overdue tenant who is
// no longer in arrears becomes active again.
func (t *Tenant) ApplyPayment(amount decimal.Decimal, paymentID uuid.UUID) {
	old := t.Balance
	t.Balance = t.Balance.Sub(amount)
	if !t.Balance.IsPositive() && t.Status == TenantStatusOverdue {
		t.Status = TenantStatusActive
	}
	t.Touch()
	t.AddDomainEvent(NewTenantBalanceChangedEvent(t, old, paymentID))
}

// ReversePayment undoes ApplyPayment's balance change. Status is left alone.
func (t *Tenant) ReversePayment(amount decimal.Decimal, paymentID uuid.UUID) {
	old := t.Balance
	t.Balance = t.Balance.Add(amount)
	t.Touch()
	t.AddDomainEvent(NewTenantBalanceChangedEvent(t, old, paymentID))
}

// Charge adds an amount owed (rent falling due, late fee)
func (t *Tenant) Charge(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Charge must be positive")
	}
	old := t.Balance
	t.Balance = t.Balance.Add(amount)
	t.Touch()
	t.AddDomainEvent(NewTenantBalanceChangedEvent(t, old, uuid.Nil))
	return nil
}

// PlanStatusChange classifies a requested status change without applying it
func (t *Tenant) PlanStatusChange(status TenantStatus) (StatusTransition, error) {
	if !status.IsValid() {
		return TransitionNone, shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid tenant status: %s", status)
	}
	switch {
	case status == t.Status:
		return TransitionNone, nil
	case status == TenantStatusMovedOut:
		if t.HasUnit() {
			return TransitionMoveOut, nil
		}
		return TransitionPlain, nil
	case status == TenantStatusActive && t.Status == TenantStatusMovedOut:
		if t.HasUnit() {
			return TransitionReactivate, nil
		}
		return TransitionPlain, nil
	}
	return TransitionPlain, nil
}

// MoveOut marks the tenant as moved out on date
func (t *Tenant) MoveOut(date time.Time) {
	old := t.Status
	t.Status = TenantStatusMovedOut
	t.MoveOutDate = &date
	t.Touch()
	t.AddDomainEvent(NewTenantStatusChangedEvent(t, old))
}

// Reactivate brings a moved-out tenant back to active
func (t *Tenant) Reactivate() {
	old := t.Status
	t.Status = TenantStatusActive
	t.MoveOutDate = nil
	t.Touch()
	t.AddDomainEvent(NewTenantStatusChangedEvent(t, old))
}

// SetStatus rewrites the status with no occupancy side effects
func (t *Tenant) SetStatus(status TenantStatus) error {
	if !status.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid tenant status: %s", status)
	}
	if t.Status == status {
		return nil
	}
	old := t.Status
	t.Status = status
	t.Touch()
	t.AddDomainEvent(NewTenantStatusChangedEvent(t, old))
	return nil
}

// AddDocument registers an uploaded document key
func (t *Tenant) AddDocument(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Document key cannot be empty")
	}
	for _, d := range t.Documents {
		if d == key {
			return nil
		}
	}
	t.Documents = append(t.Documents, key)
	t.Touch()
	return nil
}

func validateTenantName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Tenant name cannot exceed 200 characters")
	}
	return nil
}
