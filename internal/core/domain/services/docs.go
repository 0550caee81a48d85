// Package services provides domain services that encapsulate business rules
// which don't naturally belong to a single aggregate root in the freight
// tracking system.
//
// The package includes:
//   - ReinspectionPolicy: A domain service that decides whether a shipment may
//     enter another inspection round, enforcing the configured attempt limit
//
// Domain services hold policy decisions that depend on runtime configuration,
// keeping aggregates free of deployment-specific knowledge following
// Domain-Driven Design principles.
package services
