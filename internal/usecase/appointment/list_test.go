package appointment

import (
	"context"
	"testing"

	domain "github.com/bellenoire/salon-api/internal/domain/appointment"
	"github.com/bellenoire/salon-api/internal/models"
)

func TestListScopedByRole(t *testing.T) {
	f := newFixture(t)
	uc := NewListAppointments(f.repo)

	mine := f.book(t, "09:00", "pending")

	other := f.addClient(t, "caro@example.com")
	theirs := models.Appointment{
		ClientID:  other.ID,
		WorkerID:  f.worker.ID,
		ServiceID: f.service.ID,
		Date:      testDay,
		Time:      "09:30",
		Status:    "pending",
	}
	if err := f.db.Create(&theirs).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	// client only sees their own
	got, err := uc.Execute(context.Background(), clientActor(f), domain.ListFilter{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Errorf("client list = %d rows", len(got))
	}

	// worker sees the whole book
	got, err = uc.Execute(context.Background(), workerActor(f), domain.ListFilter{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("worker list = %d rows, want 2", len(got))
	}

	// admin can filter freely
	admin := domain.Actor{UserID: 1, Role: "admin"}
	got, err = uc.Execute(context.Background(), admin, domain.ListFilter{Status: "pending"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("admin list = %d rows, want 2", len(got))
	}
}
