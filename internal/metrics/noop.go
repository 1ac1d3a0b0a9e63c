package metrics

// NoopRecorder discards all metric events.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (*NoopRecorder) IncSessionCreated()                  {}
func (*NoopRecorder) IncMenuItemCreated()                 {}
func (*NoopRecorder) IncMenuItemUpdated()                 {}
func (*NoopRecorder) IncMenuItemDeleted()                 {}
func (*NoopRecorder) IncPromotionCreated()                {}
func (*NoopRecorder) IncPromotionUpdated()                {}
func (*NoopRecorder) IncPromotionDeleted()                {}
func (*NoopRecorder) IncLedgerEntryRecorded(kind string)  {}
func (*NoopRecorder) IncStorefrontView()                  {}
