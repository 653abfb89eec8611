// Package models contains the GORM persistence models backing the rental
// domain. Domain aggregates carry no ORM tags; each model here owns the
// table mapping and converts with ToDomain / FromDomain.
//
//   - property.go: properties, units, unit_utilities, utilities
//   - tenancy.go: tenants, leases
//   - rent.go: rent_payments, receipt_sequences
//   - maintenance.go: maintenance_requests
package models
