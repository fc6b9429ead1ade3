// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for the Ollama model-serving API.
//
// Helios uses three endpoints: model listing, non-streaming chat, and
// streamed model pulls.
//
// # Key Types
//
//   - Client: HTTP client for Ollama API communication
//   - Message: Chat message with role and content
//   - ModelInfo: One entry of the local model inventory
//   - PullStream: Lazy, finite stream of download progress events
//
// # Usage
//
//	client := ollama.NewClientWithConfig(ollama.DefaultConfig())
//	models, err := client.ListModels(ctx)
//	resp, err := client.Chat(ctx, "qwen2.5:7b", []ollama.Message{
//	    ollama.NewUserMessage("list files"),
//	})
//
// Pulling a model:
//
//	stream, err := client.Pull(ctx, "qwen:0.5b")
//	defer stream.Close()
//	for {
//	    p, err := stream.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    fmt.Println(p.Status)
//	}
package ollama
