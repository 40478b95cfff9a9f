package handlers

import (
	"net/http"
	"testing"

	"github.com/bellenoire/salon-api/internal/models"
)

func TestLoyaltyPointsConsistent(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db, "ana@example.com", 15)

	for i := 0; i < 3; i++ {
		db.Create(&models.LoyaltyTransaction{
			ClientID: client.ID,
			Points:   5,
			Type:     models.LoyaltyEarnedAppointment,
		})
	}

	r := newTestRouter()
	r.GET("/loyalty/points", asUser(client.UserID, models.RoleClient), NewLoyaltyHandler(db).Points)

	w := doJSON(t, r, http.MethodGet, "/loyalty/points", nil)
	mustStatus(t, w, http.StatusOK)

	var resp struct {
		Points           int  `json:"points"`
		LedgerConsistent bool `json:"ledger_consistent"`
		Transactions     []models.LoyaltyTransaction
	}
	decode(t, w, &resp)

	if resp.Points != 15 {
		t.Errorf("points = %d, want 15", resp.Points)
	}
	if !resp.LedgerConsistent {
		t.Error("ledger_consistent = false, want true")
	}
	if len(resp.Transactions) != 3 {
		t.Errorf("transactions = %d, want 3", len(resp.Transactions))
	}
}

func TestLoyaltyPointsFlagsDriftedCounter(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db, "ana@example.com", 0)

	// counter bumped without a ledger entry
	db.Model(&models.ClientProfile{}).
		Where("id = ?", client.ID).
		Update("loyalty_points", 40)

	r := newTestRouter()
	r.GET("/loyalty/points", asUser(client.UserID, models.RoleClient), NewLoyaltyHandler(db).Points)

	w := doJSON(t, r, http.MethodGet, "/loyalty/points", nil)
	mustStatus(t, w, http.StatusOK)

	var resp struct {
		LedgerConsistent bool `json:"ledger_consistent"`
	}
	decode(t, w, &resp)

	if resp.LedgerConsistent {
		t.Error("ledger_consistent = true for a drifted counter")
	}
}
