// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RecordStore: Record persistence (memory or SQLite)
//   - Searcher: One search strategy (local matcher or semantic delegate)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CollectionProvisioner / PackageWriter: Vector collection management.
//     Only required for provisioning and vector ingestion.
//   - RepoEnricher: Repository metadata enrichment during ingestion.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
