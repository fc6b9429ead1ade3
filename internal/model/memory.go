// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// DefaultMemoryCapacity holds three user/assistant exchanges.
const DefaultMemoryCapacity = 6

// Memory is a fixed-capacity FIFO of turns. Appending to a full memory evicts
// the oldest turn. It is not safe for concurrent use.
type Memory struct {
	turns []Turn
	head  int // index of the oldest turn
	size  int
}

// NewMemory creates an empty memory. A capacity below one is treated as one.
func NewMemory(capacity int) *Memory {
	if capacity < 1 {
		capacity = 1
	}
	return &Memory{turns: make([]Turn, capacity)}
}

// Append adds a turn at the tail, evicting the oldest turn when full.
func (m *Memory) Append(t Turn) {
	c := len(m.turns)
	if m.size < c {
		m.turns[(m.head+m.size)%c] = t
		m.size++
		return
	}
	m.turns[m.head] = t
	m.head = (m.head + 1) % c
}

// Snapshot returns a copy of the stored turns, oldest first.
func (m *Memory) Snapshot() []Turn {
	out := make([]Turn, m.size)
	for i := range out {
		out[i] = m.turns[(m.head+i)%len(m.turns)]
	}
	return out
}

// Clear drops every stored turn.
func (m *Memory) Clear() {
	clear(m.turns)
	m.head = 0
	m.size = 0
}

// Len returns the number of stored turns.
func (m *Memory) Len() int {
	return m.size
}
