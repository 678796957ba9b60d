// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/zabbixai-chat/internal/conversation"
)

// fakeClock drives a ToastManager without sleeping.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager() (*ToastManager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := NewToastManager()
	m.now = clock.now
	return m, clock
}

func TestKindFor(t *testing.T) {
	tests := []struct {
		in   conversation.NotificationKind
		want ToastKind
	}{
		{conversation.NotifyInfo, ToastKindStatus},
		{conversation.NotifySuccess, ToastKindSuccess},
		{conversation.NotifyWarning, ToastKindWarning},
		{conversation.NotifyError, ToastKindError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, KindFor(tc.in), tc.in.String())
	}
}

func TestNewToast_Durations(t *testing.T) {
	assert.Equal(t, DefaultToastDuration, NewToast(ToastKindStatus, "a", "").Duration)
	assert.Equal(t, DefaultToastDuration, NewToast(ToastKindSuccess, "a", "").Duration)
	assert.Equal(t, WarningToastDuration, NewToast(ToastKindWarning, "a", "").Duration)
	assert.Equal(t, ErrorToastDuration, NewToast(ToastKindError, "a", "").Duration)
}

func TestToast_Expiry(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	toast := Toast{CreatedAt: start, Duration: 4 * time.Second}

	assert.False(t, toast.ExpiredAt(start.Add(3*time.Second)))
	assert.True(t, toast.ExpiredAt(start.Add(4*time.Second)))
	assert.Equal(t, time.Second, toast.RemainingAt(start.Add(3*time.Second)))
	assert.Zero(t, toast.RemainingAt(start.Add(time.Minute)))
}

func TestToastManager_NotifyAndOrder(t *testing.T) {
	m, _ := newTestManager()
	assert.False(t, m.HasToasts())

	m.Notify(conversation.Notification{Kind: conversation.NotifySuccess, Title: "first"})
	m.Notify(conversation.Notification{Kind: conversation.NotifyError, Title: "second", Body: "body"})

	toasts := m.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, "second", toasts[0].Title, "newest first")
	assert.Equal(t, ToastKindError, toasts[0].Kind)
	assert.Equal(t, "body", toasts[0].Message)
	assert.NotEqual(t, toasts[0].ID, toasts[1].ID)
	assert.True(t, m.HasToasts())
}

func TestToastManager_Cap(t *testing.T) {
	m, _ := newTestManager()
	for i := 0; i < 6; i++ {
		m.Add(NewToast(ToastKindStatus, strings.Repeat("x", i+1), ""))
	}
	toasts := m.Toasts()
	require.Len(t, toasts, 4)
	assert.Equal(t, "xxxxxx", toasts[0].Title)
	assert.Equal(t, "xxx", toasts[3].Title)
}

func TestToastManager_TickExpires(t *testing.T) {
	m, clock := newTestManager()
	m.Notify(conversation.Notification{Kind: conversation.NotifyInfo, Title: "info"})
	m.Notify(conversation.Notification{Kind: conversation.NotifyError, Title: "error"})

	clock.advance(5 * time.Second)
	remaining := m.Tick()
	require.Len(t, remaining, 1)
	assert.Equal(t, "error", remaining[0].Title)

	clock.advance(5 * time.Second)
	assert.Empty(t, m.Tick())
	assert.False(t, m.HasToasts())
}

func TestToastManager_Dismiss(t *testing.T) {
	m, _ := newTestManager()
	a := m.Add(NewToast(ToastKindStatus, "a", ""))
	m.Add(NewToast(ToastKindStatus, "b", ""))
	m.Add(NewToast(ToastKindStatus, "c", ""))

	m.Dismiss(a)
	assert.Len(t, m.Toasts(), 2)
	m.Dismiss(999)
	assert.Len(t, m.Toasts(), 2)

	assert.True(t, m.DismissNewest())
	toasts := m.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "b", toasts[0].Title)

	m.Clear()
	assert.False(t, m.DismissNewest())
}

func TestToastManager_StoreIntegration(t *testing.T) {
	m, _ := newTestManager()
	store := conversation.New(nil, conversation.WithNotifier(m))

	_, err := store.Send(t.Context(), "hello")
	require.Error(t, err)

	toasts := m.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, conversation.TitleConnectionError, toasts[0].Title)
	assert.Equal(t, ToastKindError, toasts[0].Kind)
}

func TestRenderToastStack(t *testing.T) {
	assert.Empty(t, RenderToastStack(nil, 80, 24))

	older := NewToast(ToastKindStatus, "Older", "first body")
	newer := NewToast(ToastKindError, "Newer", "second body")
	out := RenderToastStack([]Toast{newer, older}, 0, 0)

	assert.Contains(t, out, "Older")
	assert.Contains(t, out, "second body")
	assert.Less(t, strings.Index(out, "Older"), strings.Index(out, "Newer"), "newest renders at the bottom")
	assert.Contains(t, out, "esc dismiss")
}
