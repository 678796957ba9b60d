// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation implements the message-exchange lifecycle.
//
// A Store holds the ordered messages and the transient flags around them
// (pending reply, feedback modal, attachments). It moves between two states:
//
//	Idle --Submit--> Pending --Settle--> Idle
//
// Submit appends the user message and returns an Exchange. Exchange.Do makes
// the one gateway call and Store.Settle appends exactly one bot message for
// it, the reply or a fixed connectivity error. Submitting while pending is
// rejected, never queued.
//
// Usage from a Bubble Tea program:
//
//	ex, err := store.Submit(text)
//	if err != nil {
//	    return m, nil
//	}
//	return m, func() tea.Msg { return replyMsg{ex.Do(ctx)} }
//
//	// in Update:
//	case replyMsg:
//	    store.Settle(msg.Result)
//
// Synchronous callers use Store.Send.
package conversation
