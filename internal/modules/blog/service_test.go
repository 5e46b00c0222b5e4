package blog

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic/internal/database"
	"clinic/internal/domain"
	"clinic/internal/repository"
)

type recordingNotifier struct {
	published []int64
}

func (n *recordingNotifier) NotifyBlogPublished(_ context.Context, b *domain.Blog) {
	n.published = append(n.published, b.ID)
}

func newTestService(t *testing.T) (*Service, *recordingNotifier) {
	t.Helper()
	db, err := database.Connect(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	n := &recordingNotifier{}
	return NewService(repository.NewBlogRepository(db), n), n
}

func req(title string, published bool) BlogRequest {
	return BlogRequest{Title: LocalizedInput{AR: title, EN: title}, Published: published}
}

func TestDraftsAreHiddenFromVisitors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	draft, err := svc.Create(ctx, 2, req("draft", false))
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, req("live", true))
	require.NoError(t, err)

	items, total, err := svc.List(ctx, "", repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "live", items[0].Title.EN)

	_, total, err = svc.List(ctx, domain.RoleEditor, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, err = svc.Get(ctx, domain.RoleVisitor, draft.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := svc.Get(ctx, domain.RoleAuthor, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
}

func TestPublishingNotifiesOnce(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, 2, req("draft", false))
	require.NoError(t, err)
	assert.Empty(t, notifier.published)

	_, err = svc.Update(ctx, 1, domain.RoleEditor, b.ID, req("ready", true))
	require.NoError(t, err)
	_, err = svc.Update(ctx, 1, domain.RoleEditor, b.ID, req("ready v2", true))
	require.NoError(t, err)

	assert.Equal(t, []int64{b.ID}, notifier.published)
}

func TestAuthorsEditOnlyOwnPosts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, 2, req("mine", false))
	require.NoError(t, err)

	_, err = svc.Update(ctx, 3, domain.RoleAuthor, b.ID, req("stolen", false))
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, 2, domain.RoleAuthor, b.ID, req("mine v2", false))
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.AuthorID)

	require.NoError(t, svc.Delete(ctx, b.ID))
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), ErrNotFound)
}
