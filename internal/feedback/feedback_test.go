// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package feedback

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/zabbixai-chat/internal/model"
)

func record(id string, rating int, at time.Time) model.FeedbackRecord {
	return model.FeedbackRecord{TargetMessageID: id, Rating: rating, Comment: "c-" + id, SubmittedAt: at}
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "feedback.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_ReportAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Report(ctx, record("msg_a", 5, base)))
	require.NoError(t, s.Report(ctx, record("msg_b", 2, base.Add(time.Minute))))
	require.NoError(t, s.Report(ctx, record("msg_c", 4, base.Add(2*time.Minute))))

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "msg_c", all[0].TargetMessageID, "newest first")
	assert.Equal(t, "msg_a", all[2].TargetMessageID)
	assert.Equal(t, "c-msg_b", all[1].Comment)
	assert.True(t, all[2].SubmittedAt.Equal(base))

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLiteStore_RejectsInvalid(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Report(ctx, record("", 3, time.Now())), ErrInvalidRecord)
	assert.ErrorIs(t, s.Report(ctx, record("msg_x", 0, time.Now())), ErrInvalidRecord)
	assert.ErrorIs(t, s.Report(ctx, record("msg_x", 6, time.Now())), ErrInvalidRecord)

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLiteStore_Summarize(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for i, r := range []int{5, 5, 4, 1} {
		require.NoError(t, s.Report(ctx, record("m"+string(rune('0'+i)), r, now)))
	}

	sum, err := s.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Count)
	assert.InDelta(t, 3.75, sum.Average, 0.0001)
	assert.Equal(t, 2, sum.ByRating[5])
	assert.Equal(t, 1, sum.ByRating[1])
	assert.Equal(t, 0, sum.ByRating[3])
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Report(ctx, record("msg_keep", 3, time.Now())))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "msg_keep", all[0].TargetMessageID)
}

func TestSQLiteStore_Closed(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Report(context.Background(), record("m", 3, time.Now())), ErrClosed)
	_, err = s.List(context.Background(), 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestLogReporter(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewLogReporter(zap.New(core))

	require.NoError(t, r.Report(context.Background(), record("msg_log", 4, time.Now())))

	entries := logs.FilterMessage("feedback record").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "msg_log", fields["message_id"])
	assert.Equal(t, int64(4), fields["rating"])
}

type failReporter struct{ calls int }

func (f *failReporter) Report(context.Context, model.FeedbackRecord) error {
	f.calls++
	return errors.New("unavailable")
}

func TestTee_CallsAllAndJoinsErrors(t *testing.T) {
	s := openTestStore(t)
	fail := &failReporter{}
	tee := Tee{fail, nil, s}

	err := tee.Report(context.Background(), record("msg_tee", 5, time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")
	assert.Equal(t, 1, fail.calls)

	all, lerr := s.List(context.Background(), 0)
	require.NoError(t, lerr)
	assert.Len(t, all, 1, "later reporters still run")

	assert.NoError(t, Tee{}.Report(context.Background(), record("m", 1, time.Now())))
}
