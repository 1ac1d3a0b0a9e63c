// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncSessionCreated()

	// Menu management metrics
	IncMenuItemCreated()
	IncMenuItemUpdated()
	IncMenuItemDeleted()

	// Promotion management metrics
	IncPromotionCreated()
	IncPromotionUpdated()
	IncPromotionDeleted()

	// Ledger metrics
	IncLedgerEntryRecorded(kind string) // kind: "income" or "expense"

	// Public storefront metrics
	IncStorefrontView()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
