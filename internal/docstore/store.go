// Package docstore abstracts the named-document persistence collaborator.
// Each document is loaded whole, mutated in memory by its owning module, and
// flushed whole after every mutating operation. Absent or corrupt content
// self-heals to a caller-supplied default payload instead of failing.
package docstore

import "context"

// Names of the persisted documents.
const (
	DocConfig      = "config"
	DocScores      = "scores"
	DocSeasonState = "season_state"
	DocPuzzles     = "puzzles"
)

// Store is the load-with-default / atomic-save contract.
type Store interface {
	// Load unmarshals the named document into out. When the document is
	// absent, empty, or unparseable, defaultPayload is persisted and
	// unmarshaled into out instead.
	Load(ctx context.Context, name string, defaultPayload, out any) error

	// Save persists the document atomically: a crash mid-write never
	// corrupts the previously durable state.
	Save(ctx context.Context, name string, payload any) error
}
