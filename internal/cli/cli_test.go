// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/zabbixai-chat/internal/config"
	"github.com/jeranaias/zabbixai-chat/internal/conversation"
	"github.com/jeranaias/zabbixai-chat/internal/feedback"
	"github.com/jeranaias/zabbixai-chat/internal/gateway"
	"github.com/jeranaias/zabbixai-chat/internal/model"
	"github.com/jeranaias/zabbixai-chat/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

// isolate points HOME at a temp dir and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"ZABBIXAI_ENDPOINT", "ZABBIXAI_BACKEND", "ZABBIXAI_LOG_LEVEL", "ZABBIXAI_FEEDBACK_DB", "ZABBIXAI_LISTEN"} {
		t.Setenv(k, "")
	}
	return home
}

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(t.Context())
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func chatServer(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv.URL + "/chat"
}

func replyWith(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gateway.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gateway.ChatResponse{Response: text + " <" + req.Message + ">"})
	}
}

// =============================================================================
// ASK
// =============================================================================

func TestAsk_PrintsReply(t *testing.T) {
	isolate(t)
	endpoint := chatServer(t, replyWith("Disk usage is normal."))

	res := execute(t, "", "ask", "--endpoint", endpoint, "how", "are", "disks?")
	require.NoError(t, res.err)
	assert.Equal(t, "Disk usage is normal. <how are disks?>\n", res.stdout)
}

func TestAsk_ReadsStdin(t *testing.T) {
	isolate(t)
	endpoint := chatServer(t, replyWith("ok"))

	res := execute(t, "  check the housekeeper\n", "ask", "--endpoint", endpoint)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "<check the housekeeper>")
}

func TestAsk_JSON(t *testing.T) {
	isolate(t)
	endpoint := chatServer(t, replyWith("All triggers OK."))

	res := execute(t, "", "ask", "--json", "--endpoint", endpoint, "status?")
	require.NoError(t, res.err)

	var resp struct {
		Success bool    `json:"success"`
		Data    AskData `json:"data"`
		Command string  `json:"command"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ask", resp.Command)
	assert.Equal(t, "All triggers OK. <status?>", resp.Data.Response)
	assert.Equal(t, "http", resp.Data.Backend)
	assert.NotEmpty(t, resp.Data.MessageID)
}

func TestAsk_Simulator(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "fast.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[simulator]\nmin_delay_ms = 1\nmax_delay_ms = 2\n"), 0o600))

	res := execute(t, "", "ask", "--config", cfgPath, "--backend", "simulator", "CPU alert on web01")
	require.NoError(t, res.err)
	assert.NotEmpty(t, strings.TrimSpace(res.stdout))
}

func TestAsk_NoQuestion(t *testing.T) {
	isolate(t)

	res := execute(t, "   \n", "ask")
	require.Error(t, res.err)
	assert.Equal(t, ExitUsageError, ExitCode(res.err))
}

func TestAsk_GatewayFailures(t *testing.T) {
	isolate(t)

	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL + "/chat"
	down.Close()

	broken := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	garbled := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	tests := []struct {
		name     string
		endpoint string
		sentinel error
	}{
		{"unreachable", downURL, gateway.ErrUnreachable},
		{"bad status", broken, gateway.ErrBadStatus},
		{"bad response", garbled, gateway.ErrBadResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", "ask", "--endpoint", tt.endpoint, "hello")
			require.Error(t, res.err)
			assert.ErrorIs(t, res.err, tt.sentinel)
			assert.Equal(t, ExitNetworkError, ExitCode(res.err))
			assert.Empty(t, res.stdout)
			assert.Contains(t, res.stderr, conversation.ConnectionErrorText)
		})
	}
}

// =============================================================================
// FEEDBACK
// =============================================================================

func seedFeedback(t *testing.T, path string, recs ...model.FeedbackRecord) {
	t.Helper()
	db, err := feedback.OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()
	for _, r := range recs {
		require.NoError(t, db.Report(context.Background(), r))
	}
}

func TestFeedbackList(t *testing.T) {
	isolate(t)
	dbPath := filepath.Join(t.TempDir(), "fb.db")
	t.Setenv("ZABBIXAI_FEEDBACK_DB", dbPath)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seedFeedback(t, dbPath,
		model.FeedbackRecord{TargetMessageID: "msg_a", Rating: 2, Comment: "too vague", SubmittedAt: base},
		model.FeedbackRecord{TargetMessageID: "msg_b", Rating: 5, SubmittedAt: base.Add(time.Minute)},
	)

	res := execute(t, "", "feedback", "list", "--json")
	require.NoError(t, res.err)

	var resp struct {
		Data FeedbackListData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	require.Equal(t, 2, resp.Data.Count)
	assert.Equal(t, "msg_b", resp.Data.Records[0].MessageID)
	assert.Equal(t, "msg_a", resp.Data.Records[1].MessageID)
	assert.Equal(t, "too vague", resp.Data.Records[1].Comment)
	assert.Equal(t, dbPath, resp.Data.Path)

	res = execute(t, "", "feedback", "list", "--limit", "1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "msg_b")
	assert.NotContains(t, res.stdout, "msg_a")
}

func TestFeedbackList_NoDatabase(t *testing.T) {
	isolate(t)
	t.Setenv("ZABBIXAI_FEEDBACK_DB", filepath.Join(t.TempDir(), "missing.db"))

	res := execute(t, "", "feedback", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No feedback recorded yet.")

	res = execute(t, "", "feedback", "list", "--limit", "-1")
	assert.Equal(t, ExitUsageError, ExitCode(res.err))
}

func TestFeedbackSummary(t *testing.T) {
	isolate(t)
	dbPath := filepath.Join(t.TempDir(), "fb.db")
	t.Setenv("ZABBIXAI_FEEDBACK_DB", dbPath)
	seedFeedback(t, dbPath,
		model.FeedbackRecord{TargetMessageID: "m1", Rating: 5},
		model.FeedbackRecord{TargetMessageID: "m2", Rating: 4},
		model.FeedbackRecord{TargetMessageID: "m3", Rating: 3},
	)

	res := execute(t, "", "feedback", "summary", "--json")
	require.NoError(t, res.err)

	var resp struct {
		Data FeedbackSummaryData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, 3, resp.Data.Count)
	assert.InDelta(t, 4.0, resp.Data.Average, 0.001)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 1}, resp.Data.ByRating)

	res = execute(t, "", "feedback", "summary")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "4.00")
}

// =============================================================================
// CONFIG AND VERSION
// =============================================================================

func TestConfigInitPathShow(t *testing.T) {
	home := isolate(t)
	want := filepath.Join(home, ".zabbixai", "config.toml")

	res := execute(t, "", "config", "path")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "not created yet")

	res = execute(t, "", "config", "init")
	require.NoError(t, res.err)
	require.FileExists(t, want)
	written, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(written), "# zabbixai configuration file\n"), "default path is written as TOML")

	res = execute(t, "", "config", "init")
	require.Error(t, res.err)
	assert.Equal(t, ExitUsageError, ExitCode(res.err))

	res = execute(t, "", "config", "init", "--force")
	require.NoError(t, res.err)

	res = execute(t, "", "config", "path")
	require.NoError(t, res.err)
	assert.Equal(t, want+"\n", res.stdout)

	res = execute(t, "", "config", "show", "--theme", "light")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "# source: "+want)
	assert.Contains(t, res.stdout, "[gateway]")
	assert.Contains(t, res.stdout, `theme = "light"`)

	res = execute(t, "", "config", "show", "--json")
	require.NoError(t, res.err)
	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &cfg))
	assert.Equal(t, gateway.DefaultEndpoint, cfg.Gateway.Endpoint)
}

func TestConfig_InvalidFlag(t *testing.T) {
	isolate(t)

	res := execute(t, "", "config", "show", "--backend", "carrier-pigeon")
	require.Error(t, res.err)
	assert.Equal(t, ExitConfigError, ExitCode(res.err))
}

func TestVersion(t *testing.T) {
	isolate(t)

	res := execute(t, "", "version", "--json")
	require.NoError(t, res.err)
	var resp struct {
		Data VersionData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, Version, resp.Data.Version)
	assert.Contains(t, resp.Data.Platform, "/")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errors.New("boom"), ExitGeneralError},
		{&UsageError{Msg: "bad"}, ExitUsageError},
		{fmt.Errorf("wrapped: %w", conversation.ErrEmptyInput), ExitUsageError},
		{&ConfigError{Path: "x.toml", Err: errors.New("bad")}, ExitConfigError},
		{fmt.Errorf("send: %w", gateway.ErrTimeout), ExitTimeoutError},
		{fmt.Errorf("send: %w", gateway.ErrUnreachable), ExitNetworkError},
		{NewCommandError("feedback", "list", "query failed", gateway.ErrBadResponse), ExitNetworkError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}

func TestRenderStars(t *testing.T) {
	assert.Equal(t, 3, strings.Count(RenderStars(3), styles.GlyphStarOn))
	assert.Equal(t, 2, strings.Count(RenderStars(3), styles.GlyphStarOff))
	assert.Equal(t, 5, strings.Count(RenderStars(9), styles.GlyphStarOn))
	assert.Equal(t, 5, strings.Count(RenderStars(-1), styles.GlyphStarOff))
}

// =============================================================================
// LINE-MODE CHAT
// =============================================================================

func newTestSession(t *testing.T, reports *[]model.FeedbackRecord) (*chatSession, *bytes.Buffer) {
	t.Helper()
	gw := gateway.Func(func(ctx context.Context, text string) (string, error) {
		return "reply to " + text, nil
	})
	store := conversation.New(gw, conversation.WithReporter(conversation.ReporterFunc(
		func(ctx context.Context, rec model.FeedbackRecord) error {
			*reports = append(*reports, rec)
			return nil
		})))

	var out bytes.Buffer
	return &chatSession{store: store, out: &out, errOut: &out, width: 80}, &out
}

func TestChatSession_SlashTextIsSent(t *testing.T) {
	var reports []model.FeedbackRecord
	s, out := newTestSession(t, &reports)
	ctx := t.Context()

	quit, err := s.handle(ctx, "/etc/zabbix/zabbix_server.conf is ignored?")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, out.String(), "reply to /etc/zabbix/zabbix_server.conf is ignored?")

	_, err = s.handle(ctx, "//like is a command?")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "reply to /like is a command?")

	_, err = s.handle(ctx, "//quit")
	require.NoError(t, err)

	msgs := s.store.Messages()
	require.Len(t, msgs, 6)
	assert.Equal(t, "/etc/zabbix/zabbix_server.conf is ignored?", msgs[0].Text)
	assert.Equal(t, "/like is a command?", msgs[2].Text)
	assert.Equal(t, "/quit", msgs[4].Text)
	for _, m := range msgs {
		assert.Equal(t, model.ReactionNone, m.Reaction)
	}
}

func TestIsSlashCommand(t *testing.T) {
	tests := map[string]bool{
		"/help":                   true,
		"/rate 5 great":           true,
		"/bogus":                  true,
		"/attach /tmp/report.pdf": true,
		"//help":                  false,
		"/var/log/zabbix is full": false,
		"what does /like do?":     false,
	}
	for line, want := range tests {
		assert.Equal(t, want, isSlashCommand(line), line)
	}
}

func TestChatSession_SendAndReact(t *testing.T) {
	var reports []model.FeedbackRecord
	s, out := newTestSession(t, &reports)
	ctx := t.Context()

	_, err := s.handle(ctx, "/like")
	require.Error(t, err, "nothing to react to yet")

	quit, err := s.handle(ctx, "is zabbix-server up?")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, out.String(), "reply to is zabbix-server up?")

	_, err = s.handle(ctx, "/like")
	require.NoError(t, err)
	msgs := s.store.Messages()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[1].Liked())

	_, err = s.handle(ctx, "/dislike")
	require.NoError(t, err)
	assert.True(t, s.store.Messages()[1].Disliked())
}

func TestChatSession_Rate(t *testing.T) {
	var reports []model.FeedbackRecord
	s, _ := newTestSession(t, &reports)
	ctx := t.Context()

	_, err := s.handle(ctx, "hello")
	require.NoError(t, err)

	_, err = s.handle(ctx, "/rate 9")
	var usage *UsageError
	require.ErrorAs(t, err, &usage)

	_, err = s.handle(ctx, "/rate 4 clear and short")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 4, reports[0].Rating)
	assert.Equal(t, "clear and short", reports[0].Comment)
	assert.Equal(t, s.store.Messages()[1].ID, reports[0].TargetMessageID)
	assert.False(t, s.store.Snapshot().FeedbackModalOpen)
}

func TestChatSession_Attachments(t *testing.T) {
	var reports []model.FeedbackRecord
	s, out := newTestSession(t, &reports)
	ctx := t.Context()

	dir := t.TempDir()
	pdf := filepath.Join(dir, "report.pdf")
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4\n%%EOF\n"), 0o600))
	require.NoError(t, os.WriteFile(txt, []byte("plain"), 0o600))

	_, err := s.handle(ctx, "/attach "+txt)
	require.Error(t, err)
	assert.Empty(t, s.store.Files())

	_, err = s.handle(ctx, "/attach "+pdf)
	require.NoError(t, err)
	require.Len(t, s.store.Files(), 1)

	out.Reset()
	_, err = s.handle(ctx, "/files")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "report.pdf")
	assert.Contains(t, out.String(), "PDF")

	_, err = s.handle(ctx, "/remove 2")
	require.Error(t, err)
	_, err = s.handle(ctx, "/remove 1")
	require.NoError(t, err)
	assert.Empty(t, s.store.Files())
}

func TestChatSession_Export(t *testing.T) {
	var reports []model.FeedbackRecord
	s, out := newTestSession(t, &reports)
	ctx := t.Context()
	dir := t.TempDir()

	_, err := s.handle(ctx, "/export md "+dir)
	require.Error(t, err, "empty transcript")

	_, err = s.handle(ctx, "check triggers")
	require.NoError(t, err)

	_, err = s.handle(ctx, "/export pdf "+dir)
	var usage *UsageError
	require.ErrorAs(t, err, &usage)

	_, err = s.handle(ctx, "/export json "+dir)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[Exported]")

	matches, err := filepath.Glob(filepath.Join(dir, "zabbixai_check_triggers_*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "reply to check triggers")
}

func TestChatSession_Commands(t *testing.T) {
	var reports []model.FeedbackRecord
	s, out := newTestSession(t, &reports)
	ctx := t.Context()

	quit, err := s.handle(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Zero(t, s.store.Len())

	_, err = s.handle(ctx, "/help")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "/attach PATH")

	_, err = s.handle(ctx, "/bogus")
	assert.Error(t, err)
	assert.Zero(t, s.store.Len(), "unknown commands are not sent")

	for _, line := range []string{"/quit", "/q", "exit", "QUIT"} {
		quit, err := s.handle(ctx, line)
		require.NoError(t, err)
		assert.True(t, quit, line)
	}
}
