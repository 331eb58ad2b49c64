// Package types contains the core types and interfaces for the groupwheel library.
//
// This package exists as a separate subpackage (rather than defining everything
// in the root package) so internal packages can depend on domain types without
// importing the root package, avoiding import cycles. The root groupwheel
// package re-exports the commonly used definitions via type aliases.
//
// The package defines:
//   - Domain value types: Group, Scenario, Preference, Command
//   - The SaveState enum for the persistence status machine
//   - Interfaces: Store, Assigner, Logger, MetricsCollector
//   - Hooks for lifecycle callbacks
//   - Sentinel errors shared across components
package types
