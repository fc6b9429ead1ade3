// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_KeepsMostRecentTurns(t *testing.T) {
	for n := 0; n <= 20; n++ {
		t.Run(fmt.Sprintf("appends=%d", n), func(t *testing.T) {
			mem := NewMemory(DefaultMemoryCapacity)

			var all []Turn
			for i := 0; i < n; i++ {
				turn := UserTurn(fmt.Sprintf("turn-%d", i))
				if i%2 == 1 {
					turn = AssistantTurn(fmt.Sprintf("turn-%d", i))
				}
				all = append(all, turn)
				mem.Append(turn)
				require.LessOrEqual(t, mem.Len(), DefaultMemoryCapacity)
			}

			want := all
			if len(want) > DefaultMemoryCapacity {
				want = want[len(want)-DefaultMemoryCapacity:]
			}
			if len(want) == 0 {
				want = []Turn{}
			}
			assert.Equal(t, want, mem.Snapshot())
		})
	}
}

func TestMemory_EvictsByTurnNotPair(t *testing.T) {
	mem := NewMemory(DefaultMemoryCapacity)
	for i := 0; i < 7; i++ {
		mem.Append(UserTurn(fmt.Sprintf("u%d", i)))
	}

	snap := mem.Snapshot()
	require.Len(t, snap, 6)
	assert.Equal(t, "u1", snap[0].Content, "only the single oldest turn is evicted")
	assert.Equal(t, "u6", snap[5].Content)
}

func TestMemory_Clear(t *testing.T) {
	mem := NewMemory(DefaultMemoryCapacity)
	for i := 0; i < 9; i++ {
		mem.Append(UserTurn("x"))
	}
	mem.Clear()

	assert.Equal(t, 0, mem.Len())
	assert.Empty(t, mem.Snapshot())

	mem.Append(AssistantTurn("after"))
	assert.Equal(t, []Turn{AssistantTurn("after")}, mem.Snapshot())
}

func TestMemory_SnapshotIsCopy(t *testing.T) {
	mem := NewMemory(2)
	mem.Append(UserTurn("a"))

	snap := mem.Snapshot()
	snap[0].Content = "mutated"

	assert.Equal(t, "a", mem.Snapshot()[0].Content)
}

func TestNewMemory_MinimumCapacity(t *testing.T) {
	mem := NewMemory(0)

	mem.Append(UserTurn("a"))
	mem.Append(UserTurn("b"))
	assert.Equal(t, []Turn{UserTurn("b")}, mem.Snapshot())
}

func TestToOllamaMessages(t *testing.T) {
	msgs := ToOllamaMessages([]Turn{SystemTurn("s"), UserTurn("u"), AssistantTurn("a")})

	require.Len(t, msgs, 3)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "user", msgs[1].Role)
	assert.Equal(t, "assistant", msgs[2].Role)
	assert.Equal(t, "a", msgs[2].Content)
}
