// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// WordService is the observable word store: it serialises mutations
// against the durable medium and fans out ordered snapshots to
// subscribers through an in-process feed.
package services
