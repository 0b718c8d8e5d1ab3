// Package driving defines the interfaces through which external actors
// drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them; crawlers and UI layers consume them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving
