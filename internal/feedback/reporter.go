// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package feedback

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/model"
)

// Reporter receives submitted feedback records.
type Reporter interface {
	Report(ctx context.Context, rec model.FeedbackRecord) error
}

// LogReporter writes each record to a zap logger.
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter creates a reporter logging at info level.
func NewLogReporter(logger *zap.Logger) *LogReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogReporter{logger: logger.Named("feedback")}
}

// Report logs rec. It never fails.
func (r *LogReporter) Report(_ context.Context, rec model.FeedbackRecord) error {
	r.logger.Info("feedback record",
		zap.String("message_id", rec.TargetMessageID),
		zap.Int("rating", rec.Rating),
		zap.String("comment", rec.Comment),
		zap.Time("submitted_at", rec.SubmittedAt),
	)
	return nil
}

// Tee reports to every reporter in order and joins their errors.
type Tee []Reporter

// Report calls each reporter even when an earlier one fails.
func (t Tee) Report(ctx context.Context, rec model.FeedbackRecord) error {
	var errs []error
	for _, r := range t {
		if r == nil {
			continue
		}
		if err := r.Report(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
