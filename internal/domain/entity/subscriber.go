package entity

// Subscriber is a notification recipient, keyed by the external chat
// identity of the messaging transport.
type Subscriber struct {
	ID          int64
	DisplayName string

	// NotifyEnabled is flipped only by the opt-in/opt-out handlers,
	// independently of ingestion.
	NotifyEnabled bool
}
