package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"clinic/internal/database"
	"clinic/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestBookingRepository_UpdateStatusIsCompareAndSet(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	b := &domain.Booking{Name: "Sara", Phone: "+966500000000", Date: "2026-11-01", Time: "10:30", ServiceID: 1, Status: domain.BookingPending}
	require.NoError(t, repo.Create(ctx, b))
	require.NotZero(t, b.ID)

	ok, err := repo.UpdateStatus(ctx, b.ID, domain.BookingPending, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.True(t, ok)

	// stale "from" does not overwrite
	ok, err = repo.UpdateStatus(ctx, b.ID, domain.BookingPending, domain.BookingCancelled)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingRepository_ListFilters(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()
	uid := int64(7)

	for i, st := range []domain.BookingStatus{domain.BookingPending, domain.BookingPending, domain.BookingCompleted} {
		b := &domain.Booking{Name: "P", Phone: "1", Date: "2026-11-0" + string(rune('1'+i)), Time: "09:00", ServiceID: 1, Status: st}
		if i == 0 {
			b.UserID = &uid
		}
		require.NoError(t, repo.Create(ctx, b))
	}

	list, total, err := repo.List(ctx, BookingFilter{Status: domain.BookingPending})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	list, _, err = repo.List(ctx, BookingFilter{UserID: &uid})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, total, err = repo.List(ctx, BookingFilter{DateFrom: "2026-11-02", Page: Page{Limit: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 1)
}

func TestNotificationRepository_ScopeFilterAndReadState(t *testing.T) {
	db := setupDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	for _, ref := range []domain.NotificationRef{domain.RefBooking, domain.RefBlog, domain.RefBooking, domain.RefMessage} {
		require.NoError(t, repo.Create(ctx, &domain.Notification{Title: "t", Type: domain.NotifBookingCreated, Ref: ref}))
	}

	bookingOnly := NotificationFilter{Refs: []domain.NotificationRef{domain.RefBooking}}
	list, err := repo.List(ctx, bookingOnly)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = repo.List(ctx, NotificationFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	n, err := repo.Count(ctx, NotificationFilter{All: true, UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	ids, err := repo.UnreadIDs(ctx, bookingOnly)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	// idempotent
	require.NoError(t, repo.MarkRead(ctx, ids[0]))
	require.NoError(t, repo.MarkRead(ctx, ids[0]))
	assert.ErrorIs(t, repo.MarkRead(ctx, 12345), ErrNotFound)

	n, err = repo.Count(ctx, NotificationFilter{Refs: bookingOnly.Refs, UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	read := true
	deleted, err := repo.DeleteMany(ctx, NotificationDeleteFilter{Read: &read})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.DeleteMany(ctx, NotificationDeleteFilter{Ref: domain.RefBlog})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.DeleteMany(ctx, NotificationDeleteFilter{All: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestMessageRepository_ReadState(t *testing.T) {
	db := setupDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	m := &domain.Message{Name: "Omar", Email: "omar@example.com", Message: "Hello"}
	require.NoError(t, repo.Create(ctx, m))
	require.NoError(t, repo.Create(ctx, &domain.Message{Name: "Lina", Message: "Hi"}))

	n, err := repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, repo.MarkRead(ctx, m.ID))
	require.NoError(t, repo.MarkRead(ctx, m.ID))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)

	list, total, err := repo.List(ctx, MessageFilter{UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Lina", list[0].Name)

	require.NoError(t, repo.Delete(ctx, m.ID))
	assert.ErrorIs(t, repo.Delete(ctx, m.ID), ErrNotFound)
}

func TestOfferRepository_ExpireFlags(t *testing.T) {
	db := setupDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()

	o := &domain.Offer{
		Title:               domain.Localized{AR: "خصم", EN: "Discount"},
		ExpiryDate:          time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Discount:            20,
		IsActive:            true,
		ShowInNotifications: true,
	}
	require.NoError(t, repo.Create(ctx, o))

	require.NoError(t, repo.ExpireFlags(ctx, o.ID))
	require.NoError(t, repo.ExpireFlags(ctx, o.ID))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.False(t, got.ShowInNotifications)
	assert.Equal(t, "Discount", got.Title.EN)
	assert.Equal(t, "خصم", got.Title.AR)
}

func TestUserRepository_GetByLogin(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{Username: "nour", Email: " Nour@Clinic.Test ", PasswordHash: "h", Role: domain.RoleSupport, IsActive: true}
	require.NoError(t, repo.Create(ctx, u))

	byEmail, err := repo.GetByLogin(ctx, "NOUR@clinic.test")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byName, err := repo.GetByLogin(ctx, "nour")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	err = repo.Create(ctx, &domain.User{Username: "nour", Email: "x@clinic.test", PasswordHash: "h", Role: domain.RoleVisitor})
	assert.ErrorIs(t, err, ErrConflict)
}
