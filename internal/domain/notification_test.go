package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleNotifications() []Notification {
	return []Notification{
		{ID: 1, Ref: RefBooking},
		{ID: 2, Ref: RefBlog},
		{ID: 3, Ref: RefMessage},
		{ID: 4, Ref: RefBooking},
		{ID: 5, Ref: RefOffer},
	}
}

func ids(items []Notification) []int64 {
	out := make([]int64, 0, len(items))
	for _, n := range items {
		out = append(out, n.ID)
	}
	return out
}

func TestScopeFor(t *testing.T) {
	cases := []struct {
		role UserRole
		want []int64
	}{
		{RoleAdmin, []int64{1, 2, 3, 4, 5}},
		{RoleSupport, []int64{1, 4}},
		{RoleEditor, []int64{2}},
		{RoleAuthor, []int64{2}},
		{RoleVisitor, []int64{}},
		{UserRole("unknown-role"), []int64{}},
		{UserRole(""), []int64{}},
	}

	for _, tc := range cases {
		got := ScopeFor(tc.role, sampleNotifications())
		assert.NotNil(t, got, "role %q", tc.role)
		assert.Equal(t, tc.want, ids(got), "role %q", tc.role)
	}
}

func TestScopeFor_Deterministic(t *testing.T) {
	items := sampleNotifications()
	first := ScopeFor(RoleSupport, items)
	second := ScopeFor(RoleSupport, items)
	assert.Equal(t, first, second)
	assert.Len(t, items, 5)
}

func TestNotificationScope(t *testing.T) {
	all, refs := NotificationScope(RoleAdmin)
	assert.True(t, all)
	assert.Empty(t, refs)

	all, refs = NotificationScope(RoleSupport)
	assert.False(t, all)
	assert.Equal(t, []NotificationRef{RefBooking}, refs)

	all, refs = NotificationScope(UserRole("janitor"))
	assert.False(t, all)
	assert.Empty(t, refs)
}
