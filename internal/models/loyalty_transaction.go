package models

import "time"

// LoyaltyTransaction is an append-only ledger entry. The client's
// LoyaltyPoints balance must always equal the sum of its ledger.
type LoyaltyTransaction struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"index" json:"client_id"`

	Points      int    `json:"points"`
	Type        string `gorm:"size:30" json:"type"`
	Description string `gorm:"size:255" json:"description"`
	RelatedID   *uint  `json:"related_id"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	LoyaltyEarnedAppointment = "earned_appointment"
	LoyaltyRedeemed          = "redeemed"
)
