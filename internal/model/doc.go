// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the conversation data structures.
//
// # Key Types
//
//   - Role: Turn role enumeration (system, user, assistant)
//   - Turn: One role-tagged message unit
//   - Memory: Fixed-capacity FIFO of the most recent turns
//
// # Usage
//
//	mem := model.NewMemory(model.DefaultMemoryCapacity)
//	mem.Append(model.UserTurn("list files"))
//	mem.Append(model.AssistantTurn("ls"))
//	history := mem.Snapshot()
package model
