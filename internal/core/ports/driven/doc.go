// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SearchEngine: Index writes, queries, deletes and term suggestions.
//     The engine owns ranking, tokenisation and storage format.
//   - FileSystem: Existence checks for self-healing of stale hits.
//
// # Optional Interfaces
//
//   - PreviewProcessor: Preview availability per hit. A nil processor
//     degrades the preview flag to false.
//   - SettingsStore: Persistence for the search settings.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
