// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/gateway"
	"github.com/jeranaias/zabbixai-chat/internal/model"
)

// Fixed bot texts.
const (
	// Greeting opens a fresh conversation when WithGreeting is set.
	Greeting = "Hello! I'm ZabbixAI Bot, your intelligent monitoring assistant. I can help you with " +
		"Zabbix configuration, troubleshooting, monitoring best practices, and much more. " +
		"What would you like to know?"

	// EmptyReplyText replaces a successful but empty gateway payload.
	EmptyReplyText = "Sorry, I received an empty response."

	// ConnectionErrorText is appended when the gateway fails.
	ConnectionErrorText = "Sorry, I'm having trouble connecting to the server. " +
		"Please make sure the chat API is running and reachable."
)

// Sentinel errors. Every operation that rejects its input leaves the state
// untouched and returns one of these.
var (
	ErrEmptyInput       = errors.New("message is empty")
	ErrPending          = errors.New("a reply is still pending")
	ErrNotPending       = errors.New("no reply is pending")
	ErrUnknownMessage   = errors.New("message not found")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrNoFeedbackTarget = errors.New("no message selected for feedback")
	ErrTooManyFiles     = errors.New("too many files attached")
	ErrUnsupportedFile  = errors.New("unsupported file type")
)

// =============================================================================
// STATE
// =============================================================================

// State is a point-in-time copy of the conversation.
type State struct {
	Messages          []model.Message
	Pending           bool
	FeedbackTarget    string
	FeedbackModalOpen bool
	Files             []model.UploadedFile
}

// Store owns the conversation and every mutation of it.
//
// At most one gateway call is outstanding: Submit moves the store from idle
// to pending and only a settlement moves it back. The Store is safe for
// concurrent use.
type Store struct {
	gateway  gateway.Gateway
	notifier Notifier
	reporter Reporter
	logger   *zap.Logger
	now      func() time.Time
	greet    bool

	mu             sync.Mutex
	messages       []model.Message
	pending        *Exchange
	feedbackTarget string
	feedbackOpen   bool
	files          []model.UploadedFile
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier routes side-channel alerts to n.
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithReporter sends submitted feedback records to r.
func WithReporter(r Reporter) Option {
	return func(s *Store) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithLogger sets the store's logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGreeting seeds the conversation with the bot's welcome message.
func WithGreeting() Option {
	return func(s *Store) { s.greet = true }
}

// withClock overrides time.Now (tests).
func withClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store that resolves replies through gw.
func New(gw gateway.Gateway, opts ...Option) *Store {
	s := &Store{
		gateway:  gw,
		notifier: nopNotifier{},
		reporter: nopReporter{},
		logger:   zap.NewNop(),
		now:      time.Now,
		messages: make([]model.Message, 0, 16),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.greet {
		s.messages = append(s.messages, s.stamp(model.NewBotMessage(Greeting)))
	}
	return s
}

func (s *Store) stamp(m model.Message) model.Message {
	m.CreatedAt = s.now()
	return m
}

// =============================================================================
// READ ACCESS
// =============================================================================

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Messages:          append([]model.Message(nil), s.messages...),
		Pending:           s.pending != nil,
		FeedbackTarget:    s.feedbackTarget,
		FeedbackModalOpen: s.feedbackOpen,
		Files:             append([]model.UploadedFile(nil), s.files...),
	}
}

// Messages returns a copy of the message list in creation order.
func (s *Store) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Message(nil), s.messages...)
}

// Len returns the number of messages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Pending reports whether a gateway call is outstanding.
func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Message looks up a message by id.
func (s *Store) Message(id string) (model.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.messages[i], true
	}
	return model.Message{}, false
}

func (s *Store) indexOf(id string) int {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}

// =============================================================================
// MESSAGE EXCHANGE
// =============================================================================

// Submit appends a user message and enters the pending state. The returned
// Exchange performs the single gateway call; its result must be handed back
// through Settle.
//
// The text is trimmed before it is stored or sent. Blank text and
// submissions while pending are rejected without any change.
func (s *Store) Submit(text string) (*Exchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return nil, ErrPending
	}

	msg := s.stamp(model.NewUserMessage(text))
	s.messages = append(s.messages, msg)
	ex := &Exchange{gateway: s.gateway, text: text, message: msg}
	s.pending = ex

	s.logger.Debug("message submitted",
		zap.String("id", msg.ID),
		zap.Int("length", len(text)),
	)
	return ex, nil
}

// Settle records the outcome of the outstanding exchange.
func (s *Store) Settle(res Result) (model.Message, error) {
	if res.Err != nil {
		return s.OnGatewayFailure(res.Err)
	}
	return s.OnGatewaySuccess(res.Reply)
}

// OnGatewaySuccess appends the bot reply and leaves the pending state.
// An empty payload is replaced with EmptyReplyText.
func (s *Store) OnGatewaySuccess(payload string) (model.Message, error) {
	text := payload
	if strings.TrimSpace(text) == "" {
		text = EmptyReplyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return model.Message{}, ErrNotPending
	}
	msg := s.appendBotLocked(text)
	s.logger.Debug("reply received", zap.String("id", msg.ID), zap.Int("length", len(payload)))
	return msg, nil
}

// OnGatewayFailure appends the connectivity error reply, leaves the pending
// state and raises a connection alert.
func (s *Store) OnGatewayFailure(cause error) (model.Message, error) {
	s.mu.Lock()
	if s.pending == nil {
		s.mu.Unlock()
		return model.Message{}, ErrNotPending
	}
	msg := s.appendBotLocked(ConnectionErrorText)
	s.mu.Unlock()

	s.logger.Warn("chat request failed", zap.Error(cause))
	s.notifier.Notify(Notification{
		Kind:  NotifyError,
		Title: TitleConnectionError,
		Body:  BodyConnectionError,
	})
	return msg, nil
}

func (s *Store) appendBotLocked(text string) model.Message {
	msg := s.stamp(model.NewBotMessage(text))
	s.messages = append(s.messages, msg)
	s.pending = nil
	return msg
}

// Send submits text, waits for the gateway and settles, returning the bot
// message. When the gateway fails the returned message is the connectivity
// error reply and err wraps the gateway error.
func (s *Store) Send(ctx context.Context, text string) (model.Message, error) {
	ex, err := s.Submit(text)
	if err != nil {
		return model.Message{}, err
	}

	res := ex.Do(ctx)
	msg, err := s.Settle(res)
	if err != nil {
		return msg, err
	}
	if res.Err != nil {
		return msg, fmt.Errorf("send: %w", res.Err)
	}
	return msg, nil
}

// =============================================================================
// REACTIONS
// =============================================================================

// SetReaction toggles a like or dislike on a message. Unknown ids are
// ignored and reported as ErrUnknownMessage.
func (s *Store) SetReaction(id string, kind model.ReactionKind) (model.Reaction, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return model.ReactionNone, ErrUnknownMessage
	}
	next := s.messages[i].Reaction.Toggle(kind)
	s.messages[i].Reaction = next
	s.mu.Unlock()

	n := Notification{Kind: NotifySuccess, Title: TitleFeedbackRecorded, Body: BodyLiked}
	if kind == model.KindDislike {
		n = Notification{Kind: NotifyWarning, Title: TitleFeedbackRecorded, Body: BodyDisliked}
	}
	s.notifier.Notify(n)

	s.logger.Debug("reaction toggled", zap.String("id", id), zap.Stringer("reaction", next))
	return next, nil
}

// =============================================================================
// FEEDBACK MODAL
// =============================================================================

// OpenFeedback opens the rating modal for a message.
func (s *Store) OpenFeedback(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return ErrUnknownMessage
	}
	s.feedbackTarget = id
	s.feedbackOpen = true
	return nil
}

// CloseFeedback dismisses the modal without reporting anything.
func (s *Store) CloseFeedback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedbackTarget = ""
	s.feedbackOpen = false
}

// SubmitFeedback validates and reports a rating for the selected message,
// then closes the modal. Invalid submissions change nothing.
//
// A reporter failure does not reopen the modal; it is logged and returned.
func (s *Store) SubmitFeedback(ctx context.Context, rating int, comment string) (model.FeedbackRecord, error) {
	if !model.ValidRating(rating) {
		return model.FeedbackRecord{}, ErrInvalidRating
	}

	s.mu.Lock()
	if s.feedbackTarget == "" {
		s.mu.Unlock()
		return model.FeedbackRecord{}, ErrNoFeedbackTarget
	}
	rec := model.FeedbackRecord{
		TargetMessageID: s.feedbackTarget,
		Rating:          rating,
		Comment:         strings.TrimSpace(comment),
		SubmittedAt:     s.now(),
	}
	s.feedbackTarget = ""
	s.feedbackOpen = false
	s.mu.Unlock()

	if err := s.reporter.Report(ctx, rec); err != nil {
		s.logger.Error("failed to report feedback",
			zap.String("target", rec.TargetMessageID),
			zap.Error(err),
		)
		return rec, fmt.Errorf("report feedback: %w", err)
	}

	s.notifier.Notify(Notification{
		Kind:  NotifySuccess,
		Title: TitleFeedbackSent,
		Body:  fmt.Sprintf("Thank you for your %d-star rating and feedback!", rating),
	})
	s.logger.Info("feedback submitted",
		zap.String("target", rec.TargetMessageID),
		zap.Int("rating", rec.Rating),
	)
	return rec, nil
}
