package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	SessionsCreated   uint64
	MenuItemsCreated  uint64
	MenuItemsUpdated  uint64
	MenuItemsDeleted  uint64
	PromotionsCreated uint64
	PromotionsUpdated uint64
	PromotionsDeleted uint64
	IncomeRecorded    uint64
	ExpensesRecorded  uint64
	StorefrontViews   uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	sessionsCreated   uint64
	menuItemsCreated  uint64
	menuItemsUpdated  uint64
	menuItemsDeleted  uint64
	promotionsCreated uint64
	promotionsUpdated uint64
	promotionsDeleted uint64
	incomeRecorded    uint64
	expensesRecorded  uint64
	storefrontViews   uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		SessionsCreated:   atomic.LoadUint64(&m.sessionsCreated),
		MenuItemsCreated:  atomic.LoadUint64(&m.menuItemsCreated),
		MenuItemsUpdated:  atomic.LoadUint64(&m.menuItemsUpdated),
		MenuItemsDeleted:  atomic.LoadUint64(&m.menuItemsDeleted),
		PromotionsCreated: atomic.LoadUint64(&m.promotionsCreated),
		PromotionsUpdated: atomic.LoadUint64(&m.promotionsUpdated),
		PromotionsDeleted: atomic.LoadUint64(&m.promotionsDeleted),
		IncomeRecorded:    atomic.LoadUint64(&m.incomeRecorded),
		ExpensesRecorded:  atomic.LoadUint64(&m.expensesRecorded),
		StorefrontViews:   atomic.LoadUint64(&m.storefrontViews),
	}
}

func (m *InMemoryRecorder) IncSessionCreated()   { atomic.AddUint64(&m.sessionsCreated, 1) }
func (m *InMemoryRecorder) IncMenuItemCreated()  { atomic.AddUint64(&m.menuItemsCreated, 1) }
func (m *InMemoryRecorder) IncMenuItemUpdated()  { atomic.AddUint64(&m.menuItemsUpdated, 1) }
func (m *InMemoryRecorder) IncMenuItemDeleted()  { atomic.AddUint64(&m.menuItemsDeleted, 1) }
func (m *InMemoryRecorder) IncPromotionCreated() { atomic.AddUint64(&m.promotionsCreated, 1) }
func (m *InMemoryRecorder) IncPromotionUpdated() { atomic.AddUint64(&m.promotionsUpdated, 1) }
func (m *InMemoryRecorder) IncPromotionDeleted() { atomic.AddUint64(&m.promotionsDeleted, 1) }

func (m *InMemoryRecorder) IncLedgerEntryRecorded(kind string) {
	if kind == "income" {
		atomic.AddUint64(&m.incomeRecorded, 1)
		return
	}
	atomic.AddUint64(&m.expensesRecorded, 1)
}

func (m *InMemoryRecorder) IncStorefrontView() { atomic.AddUint64(&m.storefrontViews, 1) }
