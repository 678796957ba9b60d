// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat messages and feedback.
//
// This package defines the core domain types shared by the conversation
// store, the response gateways and the user interfaces.
//
// # Key Types
//
//   - Message: Single chat message with author, text, timestamp and reaction
//   - Author: Message author enumeration (user, bot)
//   - Reaction: Like/dislike state as a single tagged value (none, liked, disliked)
//   - FeedbackRecord: Star rating and optional comment tied to one message
//   - UploadedFile: Name, size and type of a document attached in the sidebar
//
// # Usage
//
//	msg := model.NewUserMessage("How do I add a host to Zabbix?")
//	reply := model.NewBotMessage("Go to Configuration > Hosts ...")
//	reply.Reaction = reply.Reaction.Toggle(model.KindLike)
package model
