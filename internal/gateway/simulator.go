// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/text/cases"
)

// =============================================================================
// SIMULATOR CONFIGURATION
// =============================================================================

// SimulatorConfig controls the offline reply generator.
type SimulatorConfig struct {
	// MinDelay and MaxDelay bound the simulated thinking time (default: 1s..2s)
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultSimulatorConfig returns the default simulator configuration.
func DefaultSimulatorConfig() *SimulatorConfig {
	return &SimulatorConfig{
		MinDelay: 1 * time.Second,
		MaxDelay: 2 * time.Second,
	}
}

// topicReply pairs trigger keywords with a reply template. %s receives the
// user's text, quoted.
type topicReply struct {
	keywords []string
	template string
}

var topicReplies = []topicReply{
	{
		keywords: []string{"trigger", "alert", "problem"},
		template: "For %s: start with the trigger expression. Check the item it references returns data, " +
			"then review severity and dependencies so related problems do not flood your dashboard.",
	},
	{
		keywords: []string{"host", "agent", "discovery"},
		template: "Regarding %s: confirm the Zabbix agent is reachable on port 10050 and that the host's " +
			"interface matches the agent's Hostname setting. Low-level discovery can create items automatically.",
	},
	{
		keywords: []string{"template", "item"},
		template: "About %s: link a template instead of creating items by hand. Templates keep item keys, " +
			"triggers and graphs consistent across every host that uses them.",
	},
	{
		keywords: []string{"database", "housekeeper", "history", "performance"},
		template: "On %s: large history tables are the usual bottleneck. Tune the housekeeper, consider " +
			"partitioning, and keep trends for long-term data instead of raw history.",
	},
}

// genericReplies are used when no topic keyword matches.
var genericReplies = []string{
	"Thanks for asking about %s. Could you share your Zabbix version and what you have tried so far?",
	"Good question: %s. In most setups the answer starts in Configuration > Hosts and the item's latest data.",
	"I can help with %s. Check the Zabbix server log first; it usually names the failing component.",
	"Here is how I would approach %s: reproduce it on one host, confirm the data flow, then scale the fix with a template.",
}

// =============================================================================
// SIMULATOR
// =============================================================================

// Simulator answers locally after a random delay. The reply is a pure
// function of the input text; only the delay is random.
type Simulator struct {
	config atomic.Pointer[SimulatorConfig]
}

// NewSimulator creates a simulator with the given configuration.
func NewSimulator(config *SimulatorConfig) *Simulator {
	if config == nil {
		config = DefaultSimulatorConfig()
	}
	if config.MaxDelay < config.MinDelay {
		config.MaxDelay = config.MinDelay
	}
	s := &Simulator{}
	s.config.Store(config)
	return s
}

// Send waits for the simulated delay, then returns the canned reply.
// Only context cancellation makes it fail.
func (s *Simulator) Send(ctx context.Context, text string) (string, error) {
	delay := s.delay()
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", &Error{Type: ErrTypeCanceled, Message: "simulated request canceled", Cause: ctx.Err()}
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return "", &Error{Type: ErrTypeCanceled, Message: "simulated request canceled", Cause: err}
	}

	return s.Reply(text), nil
}

// Reply maps text to its templated reply without waiting.
func (s *Simulator) Reply(text string) string {
	// cases.Caser is stateful; use a fresh copy per call for concurrency safety
	folded := cases.Fold().String(text)
	quoted := fmt.Sprintf("%q", strings.TrimSpace(text))

	for _, topic := range topicReplies {
		for _, kw := range topic.keywords {
			if strings.Contains(folded, kw) {
				return fmt.Sprintf(topic.template, quoted)
			}
		}
	}

	h := fnv.New32a()
	h.Write([]byte(folded))
	return fmt.Sprintf(genericReplies[h.Sum32()%uint32(len(genericReplies))], quoted)
}

// SetDelays updates the delay bounds (used on config reload).
func (s *Simulator) SetDelays(minDelay, maxDelay time.Duration) {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	s.config.Store(&SimulatorConfig{MinDelay: minDelay, MaxDelay: maxDelay})
}

func (s *Simulator) delay() time.Duration {
	cfg := s.config.Load()
	span := cfg.MaxDelay - cfg.MinDelay
	if span <= 0 {
		return cfg.MinDelay
	}
	return cfg.MinDelay + time.Duration(rand.Int64N(int64(span)+1))
}

// Delays returns the current delay bounds.
func (s *Simulator) Delays() (minDelay, maxDelay time.Duration) {
	cfg := s.config.Load()
	return cfg.MinDelay, cfg.MaxDelay
}
