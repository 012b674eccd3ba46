// File: model/admin.go
package model

// BlacklistAction defines what a blacklist audit entry recorded.
type BlacklistAction string

const (
	BlacklistAdd    BlacklistAction = "add"
	BlacklistRemove BlacklistAction = "remove"
)

// BlacklistAuditEntry is one append-only record of a blacklist change.
type BlacklistAuditEntry struct {
	Organizer string          `json:"organizer"`
	Action    BlacklistAction `json:"action"`
	Actor     string          `json:"actor"`     // Admin identity that made the change
	Timestamp uint64          `json:"timestamp"` // Transaction timestamp, unix seconds
	Reason    string          `json:"reason"`
}

// RegistryInfo summarises the administrative state of the registry.
type RegistryInfo struct {
	Initialized           bool   `json:"initialized"`
	Admin                 string `json:"admin"`
	PlatformFeeBps        uint32 `json:"platformFeeBps"`
	PlatformWallet        string `json:"platformWallet"`
	TicketPaymentContract string `json:"ticketPaymentContract"`
	GlobalPromoBps        uint32 `json:"globalPromoBps"`
	PromoExpiry           uint64 `json:"promoExpiry"`
}
