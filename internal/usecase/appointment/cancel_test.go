package appointment

import (
	"context"
	"testing"

	domain "github.com/bellenoire/salon-api/internal/domain/appointment"
	"github.com/bellenoire/salon-api/internal/httperr"
)

func cancelUC(f *fixture) *CancelAppointment {
	return NewCancelAppointment(f.repo, f.notifier, f.dispatcher)
}

func TestCancelOwnAppointment(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "09:00", "confirmed")

	_, err := cancelUC(f).Execute(context.Background(), ap.ID, clientActor(f), "running late")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	stored := f.reload(t, ap.ID)
	if stored.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %s, want cancelled", stored.Status)
	}
	if stored.CancelReason != "running late" {
		t.Errorf("reason = %q", stored.CancelReason)
	}

	// both sides hear about it
	if n := f.notificationCount(t, f.worker.UserID); n != 1 {
		t.Errorf("worker notifications = %d, want 1", n)
	}
	if n := f.notificationCount(t, f.client.UserID); n != 1 {
		t.Errorf("client notifications = %d, want 1", n)
	}
}

func TestCancelForeignAppointmentForbidden(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "09:00", "confirmed")

	intruder := f.addClient(t, "eve@example.com")
	actor := domain.Actor{UserID: intruder.UserID, Role: "client"}

	_, err := cancelUC(f).Execute(context.Background(), ap.ID, actor, "mine now")
	if !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("err = %v, want forbidden", err)
	}

	if stored := f.reload(t, ap.ID); stored.Status != "confirmed" {
		t.Errorf("status = %s, want confirmed", stored.Status)
	}
}

func TestWorkerCanCancelAnyAppointment(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "09:00", "pending")

	actor := domain.Actor{UserID: f.worker.UserID, Role: "worker"}
	_, err := cancelUC(f).Execute(context.Background(), ap.ID, actor, "no-show")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if stored := f.reload(t, ap.ID); stored.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %s, want cancelled", stored.Status)
	}
}

func TestCancelTerminalAppointment(t *testing.T) {
	f := newFixture(t)

	for _, status := range []string{"completed", "cancelled"} {
		ap := f.book(t, "09:00", status)

		_, err := cancelUC(f).Execute(context.Background(), ap.ID, clientActor(f), "too late")
		if !httperr.IsBusiness(err, "invalid_transition") {
			t.Errorf("%s: err = %v, want invalid_transition", status, err)
		}

		f.db.Delete(&ap)
	}
}

func TestCancelUnknownAppointment(t *testing.T) {
	f := newFixture(t)

	_, err := cancelUC(f).Execute(context.Background(), 9999, clientActor(f), "")
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Errorf("err = %v, want appointment_not_found", err)
	}
}
