package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/bellenoire/salon-api/internal/models"
)

func TestNotificationListAndUnreadCount(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db, "ana@example.com", 0)

	db.Create(&models.Notification{UserID: client.UserID, Title: "a", IsRead: true})
	db.Create(&models.Notification{UserID: client.UserID, Title: "b"})
	db.Create(&models.Notification{UserID: 9999, Title: "someone else's"})

	r := newTestRouter()
	h := NewNotificationHandler(db)
	r.GET("/notifications", asUser(client.UserID, models.RoleClient), h.List)

	w := doJSON(t, r, http.MethodGet, "/notifications", nil)
	mustStatus(t, w, http.StatusOK)

	var resp struct {
		Notifications []models.Notification `json:"notifications"`
		UnreadCount   int                   `json:"unread_count"`
	}
	decode(t, w, &resp)

	if len(resp.Notifications) != 2 {
		t.Errorf("notifications = %d, want 2", len(resp.Notifications))
	}
	if resp.UnreadCount != 1 {
		t.Errorf("unread_count = %d, want 1", resp.UnreadCount)
	}

	w = doJSON(t, r, http.MethodGet, "/notifications?unread=true", nil)
	mustStatus(t, w, http.StatusOK)
	decode(t, w, &resp)

	if len(resp.Notifications) != 1 || resp.Notifications[0].Title != "b" {
		t.Errorf("unread filter returned %+v", resp.Notifications)
	}
}

func TestMarkReadOnlyOwnNotifications(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db, "ana@example.com", 0)

	mine := models.Notification{UserID: client.UserID, Title: "mine"}
	db.Create(&mine)
	foreign := models.Notification{UserID: 9999, Title: "not mine"}
	db.Create(&foreign)

	r := newTestRouter()
	h := NewNotificationHandler(db)
	r.PUT("/notifications/:id/read", asUser(client.UserID, models.RoleClient), h.MarkRead)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/notifications/%d/read", mine.ID), nil)
	mustStatus(t, w, http.StatusOK)

	var stored models.Notification
	db.First(&stored, mine.ID)
	if !stored.IsRead {
		t.Error("notification not marked read")
	}

	// someone else's stays untouched and reads as missing
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/notifications/%d/read", foreign.ID), nil)
	mustStatus(t, w, http.StatusNotFound)

	var foreignStored models.Notification
	db.First(&foreignStored, foreign.ID)
	if foreignStored.IsRead {
		t.Error("foreign notification was modified")
	}
}
