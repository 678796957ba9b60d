// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"

	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/model"
)

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// NotificationKind selects how an alert is presented.
type NotificationKind int

const (
	NotifyInfo NotificationKind = iota
	NotifySuccess
	NotifyWarning
	NotifyError
)

// String returns the kind name.
func (k NotificationKind) String() string {
	switch k {
	case NotifySuccess:
		return "success"
	case NotifyWarning:
		return "warning"
	case NotifyError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a transient alert. It is never stored in the conversation.
type Notification struct {
	Kind  NotificationKind
	Title string
	Body  string
}

// Notifier receives side-channel alerts. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

// Notifiers fans a notification out to every member in order.
type Notifiers []Notifier

// Notify implements Notifier.
func (ns Notifiers) Notify(n Notification) {
	for _, x := range ns {
		if x != nil {
			x.Notify(n)
		}
	}
}

// LogNotifier writes every notification to l, at warn level for warnings
// and errors and info otherwise.
func LogNotifier(l *zap.Logger) Notifier {
	if l == nil {
		return nopNotifier{}
	}
	l = l.Named("notify")
	return NotifierFunc(func(n Notification) {
		fields := []zap.Field{
			zap.Stringer("kind", n.Kind),
			zap.String("title", n.Title),
			zap.String("body", n.Body),
		}
		if n.Kind == NotifyWarning || n.Kind == NotifyError {
			l.Warn("notification", fields...)
			return
		}
		l.Info("notification", fields...)
	})
}

// Alert texts shown alongside conversation events.
const (
	TitleConnectionError  = "Connection Error"
	BodyConnectionError   = "Failed to connect to the chat API"
	TitleFeedbackRecorded = "Feedback recorded"
	BodyLiked             = "Thank you for your positive feedback!"
	BodyDisliked          = "I'll work on improving my responses."
	TitleFeedbackSent     = "Feedback submitted"
)

// =============================================================================
// FEEDBACK REPORTING
// =============================================================================

// Reporter receives submitted feedback records.
type Reporter interface {
	Report(ctx context.Context, rec model.FeedbackRecord) error
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, rec model.FeedbackRecord) error

// Report calls f(ctx, rec).
func (f ReporterFunc) Report(ctx context.Context, rec model.FeedbackRecord) error {
	return f(ctx, rec)
}

type nopReporter struct{}

func (nopReporter) Report(context.Context, model.FeedbackRecord) error { return nil }
