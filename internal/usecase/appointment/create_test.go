package appointment

import (
	"context"
	"testing"

	domain "github.com/bellenoire/salon-api/internal/domain/appointment"
	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/models"
)

func createUC(f *fixture) *CreateAppointment {
	return NewCreateAppointment(f.repo, f.notifier, f.dispatcher)
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)

	ap, err := createUC(f).Execute(context.Background(), CreateInput{
		ClientUserID: f.client.UserID,
		WorkerID:     f.worker.ID,
		ServiceID:    f.service.ID,
		Date:         testDay,
		Time:         "09:00",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.Status != string(domain.StatusPending) {
		t.Errorf("status = %s, want pending", ap.Status)
	}
	if ap.Price != f.service.Price {
		t.Errorf("price = %v, want %v", ap.Price, f.service.Price)
	}
	if ap.DurationMin != f.service.DurationMin {
		t.Errorf("duration = %d", ap.DurationMin)
	}

	stored := f.reload(t, ap.ID)
	if stored.Time != "09:00" || !stored.Date.Equal(testDay) {
		t.Errorf("stored slot = %v %s", stored.Date, stored.Time)
	}

	// worker is told about the new booking
	if n := f.notificationCount(t, f.worker.UserID); n != 1 {
		t.Errorf("worker notifications = %d, want 1", n)
	}
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	f := newFixture(t)

	in := CreateInput{
		ClientUserID: f.client.UserID,
		WorkerID:     f.worker.ID,
		ServiceID:    f.service.ID,
		Date:         testDay,
		Time:         "10:00",
	}

	if _, err := createUC(f).Execute(context.Background(), in); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	other := f.addClient(t, "bia@example.com")
	in.ClientUserID = other.UserID

	_, err := createUC(f).Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "slot_conflict") {
		t.Fatalf("err = %v, want slot_conflict", err)
	}

	var count int64
	f.db.Model(&models.Appointment{}).Count(&count)
	if count != 1 {
		t.Errorf("appointments = %d, want 1", count)
	}
}

func TestCreateAppointmentCancelledSlotReusable(t *testing.T) {
	f := newFixture(t)

	old := f.book(t, "10:00", "cancelled")

	ap, err := createUC(f).Execute(context.Background(), CreateInput{
		ClientUserID: f.client.UserID,
		WorkerID:     f.worker.ID,
		ServiceID:    f.service.ID,
		Date:         testDay,
		Time:         "10:00",
	})
	if err != nil {
		t.Fatalf("rebooking a cancelled slot: %v", err)
	}
	if ap.ID == old.ID {
		t.Error("expected a new row")
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		in   CreateInput
		code string
	}{
		{
			"bad time",
			CreateInput{ClientUserID: f.client.UserID, WorkerID: f.worker.ID, ServiceID: f.service.ID, Date: testDay, Time: "9am"},
			"invalid_time",
		},
		{
			"unknown client",
			CreateInput{ClientUserID: 9999, WorkerID: f.worker.ID, ServiceID: f.service.ID, Date: testDay, Time: "09:00"},
			"client_not_found",
		},
		{
			"unknown service",
			CreateInput{ClientUserID: f.client.UserID, WorkerID: f.worker.ID, ServiceID: 9999, Date: testDay, Time: "09:00"},
			"service_not_found",
		},
		{
			"unknown worker",
			CreateInput{ClientUserID: f.client.UserID, WorkerID: 9999, ServiceID: f.service.ID, Date: testDay, Time: "09:00"},
			"worker_not_found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := createUC(f).Execute(context.Background(), tc.in)
			if !httperr.IsBusiness(err, tc.code) {
				t.Errorf("err = %v, want %s", err, tc.code)
			}
		})
	}
}
