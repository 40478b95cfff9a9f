package appointment

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bellenoire/salon-api/internal/audit"
	dbpkg "github.com/bellenoire/salon-api/internal/db"
	domain "github.com/bellenoire/salon-api/internal/domain/appointment"
	"github.com/bellenoire/salon-api/internal/infra/repository"
	"github.com/bellenoire/salon-api/internal/models"
	"github.com/bellenoire/salon-api/internal/notify"
)

// testDay is a Monday.
var testDay = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// one connection, or every pooled conn gets its own :memory: db
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db   *gorm.DB
	repo domain.Repository

	notifier   *notify.Emitter
	dispatcher *audit.Dispatcher

	client  models.ClientProfile
	worker  models.WorkerProfile
	service models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{
		db:         db,
		repo:       repository.NewAppointmentGormRepository(db),
		notifier:   notify.New(db),
		dispatcher: audit.NewDispatcher(audit.New(db)),
	}

	f.client = f.addClient(t, "ana@example.com")
	f.worker = f.addWorker(t, "rosa@example.com")
	f.service = f.addService(t, "Haircut", 80)
	f.setSchedule(t, f.worker.ID, testDay, "09:00", "11:00")

	return f
}

func (f *fixture) addClient(t *testing.T, email string) models.ClientProfile {
	t.Helper()

	user := models.User{
		Name:         "Test Client",
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleClient,
		IsActive:     true,
	}
	if err := f.db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	cp := models.ClientProfile{
		UserID:       user.ID,
		Tier:         "bronze",
		ReferralCode: fmt.Sprintf("ref-%d", user.ID),
	}
	if err := f.db.Create(&cp).Error; err != nil {
		t.Fatalf("create client profile: %v", err)
	}
	cp.User = user
	return cp
}

func (f *fixture) addWorker(t *testing.T, email string) models.WorkerProfile {
	t.Helper()

	user := models.User{
		Name:         "Test Worker",
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleWorker,
		IsActive:     true,
	}
	if err := f.db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	wp := models.WorkerProfile{
		UserID:      user.ID,
		Position:    "Stylist",
		IsAvailable: true,
	}
	if err := f.db.Create(&wp).Error; err != nil {
		t.Fatalf("create worker profile: %v", err)
	}
	wp.User = user
	return wp
}

func (f *fixture) addService(t *testing.T, name string, price float64) models.Service {
	t.Helper()

	svc := models.Service{
		Name:        name,
		DurationMin: 30,
		Price:       price,
		Active:      true,
	}
	if err := f.db.Create(&svc).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}

func (f *fixture) setSchedule(t *testing.T, workerID uint, day time.Time, start, end string) {
	t.Helper()

	sch := models.WorkerSchedule{
		WorkerID:    workerID,
		DayOfWeek:   int(day.Weekday()),
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
	if err := f.db.Create(&sch).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}
}

// book inserts an appointment row directly, bypassing the use case.
func (f *fixture) book(t *testing.T, timeStr, status string) models.Appointment {
	t.Helper()

	ap := models.Appointment{
		ClientID:    f.client.ID,
		WorkerID:    f.worker.ID,
		ServiceID:   f.service.ID,
		Date:        testDay,
		Time:        timeStr,
		DurationMin: f.service.DurationMin,
		Price:       f.service.Price,
		Status:      status,
	}
	if err := f.db.Create(&ap).Error; err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	return ap
}

func (f *fixture) reload(t *testing.T, id uint) models.Appointment {
	t.Helper()

	var ap models.Appointment
	if err := f.db.First(&ap, id).Error; err != nil {
		t.Fatalf("reload appointment %d: %v", id, err)
	}
	return ap
}

func (f *fixture) notificationCount(t *testing.T, userID uint) int64 {
	t.Helper()

	var n int64
	if err := f.db.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	return n
}
