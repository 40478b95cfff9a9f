package appointment

import (
	"context"
	"testing"

	domain "github.com/bellenoire/salon-api/internal/domain/appointment"
	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/models"
)

func statusUC(f *fixture) *UpdateStatus {
	return NewUpdateStatus(f.repo, f.dispatcher)
}

func workerActor(f *fixture) domain.Actor {
	return domain.Actor{UserID: f.worker.UserID, Role: "worker"}
}

func TestUpdateStatusClientForbidden(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "09:00", "pending")

	_, err := statusUC(f).Execute(context.Background(), ap.ID, clientActor(f), domain.StatusConfirmed)
	if !httperr.IsBusiness(err, "forbidden") {
		t.Errorf("err = %v, want forbidden", err)
	}
}

func TestUpdateStatusConfirm(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "09:00", "pending")

	_, err := statusUC(f).Execute(context.Background(), ap.ID, workerActor(f), domain.StatusConfirmed)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if stored := f.reload(t, ap.ID); stored.Status != "confirmed" {
		t.Errorf("status = %s, want confirmed", stored.Status)
	}

	// a plain confirm moves no counters
	var client models.ClientProfile
	f.db.First(&client, f.client.ID)
	if client.LoyaltyPoints != 0 || client.TotalAppointments != 0 {
		t.Errorf("counters moved on confirm: %+v", client)
	}
}

func TestUpdateStatusRejectsSkips(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "09:00", "pending")

	for _, to := range []domain.Status{domain.StatusInProgress, domain.StatusCompleted} {
		_, err := statusUC(f).Execute(context.Background(), ap.ID, workerActor(f), to)
		if !httperr.IsBusiness(err, "invalid_transition") {
			t.Errorf("pending -> %s: err = %v, want invalid_transition", to, err)
		}
	}

	_, err := statusUC(f).Execute(context.Background(), ap.ID, workerActor(f), "finished")
	if !httperr.IsBusiness(err, "invalid_status") {
		t.Errorf("err = %v, want invalid_status", err)
	}
}

func TestCompletionAccruesRewards(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "09:00", "in_progress")

	_, err := statusUC(f).Execute(context.Background(), ap.ID, workerActor(f), domain.StatusCompleted)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if stored := f.reload(t, ap.ID); stored.Status != "completed" {
		t.Fatalf("status = %s, want completed", stored.Status)
	}

	var client models.ClientProfile
	f.db.First(&client, f.client.ID)

	if client.LoyaltyPoints != domain.RewardPoints {
		t.Errorf("points = %d, want %d", client.LoyaltyPoints, domain.RewardPoints)
	}
	if client.TotalAppointments != 1 {
		t.Errorf("total_appointments = %d, want 1", client.TotalAppointments)
	}
	if client.TotalSpent != ap.Price {
		t.Errorf("total_spent = %v, want %v", client.TotalSpent, ap.Price)
	}

	var entry models.LoyaltyTransaction
	if err := f.db.Where("client_id = ?", client.ID).First(&entry).Error; err != nil {
		t.Fatalf("ledger entry missing: %v", err)
	}
	if entry.Points != domain.RewardPoints || entry.Type != models.LoyaltyEarnedAppointment {
		t.Errorf("entry = %+v", entry)
	}
	if entry.RelatedID == nil || *entry.RelatedID != ap.ID {
		t.Errorf("related id = %v, want %d", entry.RelatedID, ap.ID)
	}

	if n := f.notificationCount(t, f.client.UserID); n != 1 {
		t.Errorf("client notifications = %d, want 1", n)
	}
}

// Force the last write of the reward transaction to fail and check
// nothing else stuck.
func TestCompletionRollsBackAsOne(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "09:00", "in_progress")

	if err := f.db.Migrator().DropTable(&models.Notification{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := statusUC(f).Execute(context.Background(), ap.ID, workerActor(f), domain.StatusCompleted)
	if err == nil {
		t.Fatal("expected the reward transaction to fail")
	}

	if stored := f.reload(t, ap.ID); stored.Status != "in_progress" {
		t.Errorf("status = %s, want in_progress", stored.Status)
	}

	var client models.ClientProfile
	f.db.First(&client, f.client.ID)
	if client.LoyaltyPoints != 0 || client.TotalAppointments != 0 || client.TotalSpent != 0 {
		t.Errorf("counters moved despite rollback: %+v", client)
	}

	var entries int64
	f.db.Model(&models.LoyaltyTransaction{}).Count(&entries)
	if entries != 0 {
		t.Errorf("ledger entries = %d, want 0", entries)
	}
}

// A second completion working from a stale in_progress read must lose
// against the store: the guarded status flip only lands once, however
// the requests interleave.
func TestCompletionAccruesOnce(t *testing.T) {
	f := newFixture(t)
	booked := f.book(t, "09:00", "in_progress")

	// both requests read the row before either writes
	stale, err := f.repo.GetAppointment(context.Background(), booked.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}

	if _, err := statusUC(f).Execute(context.Background(), booked.ID, workerActor(f), domain.StatusCompleted); err != nil {
		t.Fatalf("first completion: %v", err)
	}

	stale.Status = "completed"
	err = f.repo.CompleteWithRewards(context.Background(), stale, domain.RewardPoints)
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("stale completion: err = %v, want invalid_transition", err)
	}

	var client models.ClientProfile
	f.db.First(&client, f.client.ID)
	if client.LoyaltyPoints != domain.RewardPoints {
		t.Errorf("points = %d, want %d", client.LoyaltyPoints, domain.RewardPoints)
	}
	if client.TotalAppointments != 1 {
		t.Errorf("total_appointments = %d, want 1", client.TotalAppointments)
	}

	var entries int64
	f.db.Model(&models.LoyaltyTransaction{}).Where("client_id = ?", client.ID).Count(&entries)
	if entries != 1 {
		t.Errorf("ledger entries = %d, want 1", entries)
	}
}

// The stored balance must stay reconstructible from the ledger alone.
func TestLedgerMatchesCounter(t *testing.T) {
	f := newFixture(t)

	times := []string{"09:00", "09:30", "10:00"}
	for _, at := range times {
		ap := f.book(t, at, "in_progress")
		if _, err := statusUC(f).Execute(context.Background(), ap.ID, workerActor(f), domain.StatusCompleted); err != nil {
			t.Fatalf("complete %s: %v", at, err)
		}
	}

	var client models.ClientProfile
	f.db.First(&client, f.client.ID)

	var sum int64
	f.db.Model(&models.LoyaltyTransaction{}).
		Where("client_id = ?", client.ID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&sum)

	if int(sum) != client.LoyaltyPoints {
		t.Errorf("ledger sum = %d, counter = %d", sum, client.LoyaltyPoints)
	}
	if client.LoyaltyPoints != len(times)*domain.RewardPoints {
		t.Errorf("points = %d, want %d", client.LoyaltyPoints, len(times)*domain.RewardPoints)
	}
}
