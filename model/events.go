package model

// EventRecord is the authoritative payment-routing record for a registered event.
type EventRecord struct {
	EventID   string `json:"eventId"`   // Unique ID for the event, never rebound
	Organizer string `json:"organizer"` // Only identity allowed to mutate this record
	Payout    string `json:"payout"`    // Where funds for this event are routed
	FeeBps    uint32 `json:"feeBps"`    // Platform fee snapshot taken at registration
	Active    bool   `json:"active"`
	CreatedAt uint64 `json:"createdAt"` // Transaction timestamp, unix seconds
}

// PaymentInfo is the read-only projection handed to the payment component.
type PaymentInfo struct {
	Payout string `json:"payout"`
	FeeBps uint32 `json:"feeBps"`
}

// PaymentInfo projects the record onto the fields a payment needs.
func (e *EventRecord) PaymentInfo() *PaymentInfo {
	return &PaymentInfo{Payout: e.Payout, FeeBps: e.FeeBps}
}
