package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic/internal/database"
	"clinic/internal/domain"
	"clinic/internal/repository"
)

type recordingPublisher struct {
	published []domain.Notification
}

func (p *recordingPublisher) Publish(n domain.Notification) {
	p.published = append(p.published, n)
}

// flakyRepo fails MarkRead for the ids in fail.
type flakyRepo struct {
	*repository.NotificationRepository
	fail map[int64]bool
}

func (r *flakyRepo) MarkRead(ctx context.Context, id int64) error {
	if r.fail[id] {
		return errors.New("write timeout")
	}
	return r.NotificationRepository.MarkRead(ctx, id)
}

func newRepo(t *testing.T) *repository.NotificationRepository {
	t.Helper()
	db, err := database.Connect(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return repository.NewNotificationRepository(db)
}

func seed(t *testing.T, svc *Service, refs ...domain.NotificationRef) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		n := &domain.Notification{Title: string(ref), Type: domain.NotifBookingCreated, Ref: ref}
		require.NoError(t, svc.Create(context.Background(), n))
		ids = append(ids, n.ID)
	}
	return ids
}

func TestService_ListIsScopedByRole(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(newRepo(t), pub, 4, zerolog.Nop())
	ctx := context.Background()
	seed(t, svc, domain.RefBooking, domain.RefBlog, domain.RefMessage, domain.RefBooking, domain.RefOffer)
	assert.Len(t, pub.published, 5)

	cases := map[domain.UserRole]int{
		domain.RoleAdmin:   5,
		domain.RoleSupport: 2,
		domain.RoleEditor:  1,
		domain.RoleAuthor:  1,
		domain.RoleVisitor: 0,
		"janitor":          0,
	}
	for role, want := range cases {
		list, err := svc.List(ctx, role, false, repository.Page{})
		require.NoError(t, err)
		assert.Len(t, list, want, role)
		assert.NotNil(t, list)

		n, err := svc.UnreadCount(ctx, role)
		require.NoError(t, err)
		assert.Equal(t, int64(want), n, role)
	}
}

func TestService_MarkReadRespectsScope(t *testing.T) {
	svc := NewService(newRepo(t), nil, 4, zerolog.Nop())
	ctx := context.Background()
	ids := seed(t, svc, domain.RefBooking, domain.RefBlog)

	require.NoError(t, svc.MarkRead(ctx, domain.RoleSupport, ids[0]))
	require.NoError(t, svc.MarkRead(ctx, domain.RoleSupport, ids[0]))

	assert.ErrorIs(t, svc.MarkRead(ctx, domain.RoleSupport, ids[1]), ErrNotFound)
	assert.ErrorIs(t, svc.MarkRead(ctx, domain.RoleAdmin, 999), ErrNotFound)

	n, err := svc.UnreadCount(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestService_MarkAllReadOnlyTouchesScope(t *testing.T) {
	svc := NewService(newRepo(t), nil, 4, zerolog.Nop())
	ctx := context.Background()
	seed(t, svc, domain.RefBooking, domain.RefBooking, domain.RefBlog)

	res, err := svc.MarkAllRead(ctx, domain.RoleSupport)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Requested)
	assert.Equal(t, 2, res.Updated)
	assert.Empty(t, res.Failed)

	n, err := svc.UnreadCount(ctx, domain.RoleSupport)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = svc.UnreadCount(ctx, domain.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestService_MarkAllReadReportsFailures(t *testing.T) {
	base := newRepo(t)
	repo := &flakyRepo{NotificationRepository: base, fail: map[int64]bool{}}
	svc := NewService(repo, nil, 3, zerolog.Nop())
	ctx := context.Background()
	ids := seed(t, svc, domain.RefBooking, domain.RefBlog, domain.RefMessage, domain.RefOffer, domain.RefBooking)
	repo.fail[ids[1]] = true
	repo.fail[ids[3]] = true

	res, err := svc.MarkAllRead(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Requested)
	assert.Equal(t, 3, res.Updated)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, ids[1], res.Failed[0].ID)
	assert.Equal(t, ids[3], res.Failed[1].ID)
	assert.Equal(t, "write timeout", res.Failed[0].Error)

	n, err := svc.UnreadCount(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(len(res.Failed)), n)
}

func TestService_DeleteMany(t *testing.T) {
	svc := NewService(newRepo(t), nil, 4, zerolog.Nop())
	ctx := context.Background()
	ids := seed(t, svc, domain.RefBooking, domain.RefBlog, domain.RefBooking)
	require.NoError(t, svc.MarkRead(ctx, domain.RoleAdmin, ids[0]))

	_, err := svc.DeleteMany(ctx, repository.NotificationDeleteFilter{})
	assert.ErrorIs(t, err, ErrEmptyFilter)

	read := true
	n, err := svc.DeleteMany(ctx, repository.NotificationDeleteFilter{Read: &read})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = svc.DeleteMany(ctx, repository.NotificationDeleteFilter{Ref: domain.RefBooking})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.ErrorIs(t, svc.Delete(ctx, ids[0]), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, ids[1]))
}

func TestService_NotifyHelpers(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(newRepo(t), pub, 4, zerolog.Nop())
	ctx := context.Background()

	b := &domain.Booking{ID: 12, Name: "Sara", Date: "2026-11-01", Time: "10:30", Status: domain.BookingConfirmed}
	svc.NotifyBookingCreated(ctx, b)
	svc.NotifyBookingStatusChanged(ctx, b, domain.BookingPending)
	svc.NotifyNewMessage(ctx, &domain.Message{ID: 3, Name: "Omar"})
	svc.NotifyBlogPublished(ctx, &domain.Blog{ID: 4, Title: domain.Localized{EN: "Dental care"}})
	svc.NotifyNewOffer(ctx, &domain.Offer{ID: 5, Title: domain.Localized{EN: "20% off"}})

	require.Len(t, pub.published, 5)
	assert.Equal(t, domain.RefBooking, pub.published[0].Ref)
	assert.Equal(t, int64(12), pub.published[0].RefID)
	assert.Contains(t, pub.published[1].Message, "Pending -> Confirmed")
	assert.Equal(t, domain.RefMessage, pub.published[2].Ref)
	assert.Equal(t, domain.RefBlog, pub.published[3].Ref)
	assert.Equal(t, domain.RefOffer, pub.published[4].Ref)
}
