// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeranaias/helios/internal/ollama"
)

func newTestSelector(b *fakeBackend, c Console) (*Selector, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewSelector(b, c, out, zap.NewNop()), out
}

const pullOK = `{"status":"pulling manifest"}
{"status":"pulling abc","digest":"sha256:abc","total":2048}
{"status":"pulling abc","digest":"sha256:abc","total":2048,"completed":1024}
{"status":"pulling abc","digest":"sha256:abc","total":2048,"completed":2048}
{"status":"verifying sha256 digest"}
{"status":"success"}
`

func TestSelect_Menu(t *testing.T) {
	backend := &fakeBackend{models: []ollama.ModelInfo{
		{Name: "llama3:8b", Model: "llama3:8b", Size: 4_661_224_676},
		{Name: "qwen:0.5b", Size: 394_998_579},
	}}
	console := newConsole("", "abc", "7", "0", "2")
	sel, out := newTestSelector(backend, console)

	name, err := sel.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "qwen:0.5b", name, "name is used when model is absent")

	text := out.String()
	assert.Contains(t, text, "\nRequesting model inventory from the Ollama service...\n")
	assert.Contains(t, text, "I have detected the following valid models on your system:\n")
	assert.Contains(t, text, "  1: llama3:8b (File Size: 4.3 GiB)\n")
	assert.Contains(t, text, "  2: qwen:0.5b (File Size: 0.4 GiB)\n")
	assert.Contains(t, text, "  3: [Download a new model]\n")
	assert.Equal(t, 1, strings.Count(text, "Invalid input. Please enter a number corresponding to your choice."))
	assert.Equal(t, 2, strings.Count(text, "A minor miscalculation. Please select a valid number."))
	assert.Contains(t, text, "A fine choice. I will utilize the 'qwen:0.5b' model.\n")

	assert.Len(t, console.prompts, 5, "empty answer re-prompts without a message")
	assert.Empty(t, console.history, "menu answers are not recorded")
}

func TestSelect_DownloadChoice(t *testing.T) {
	backend := &fakeBackend{models: models("llama3:8b"), pullBody: pullOK}
	sel, out := newTestSelector(backend, newConsole("2", "phi3", "yes"))

	name, err := sel.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "phi3", name)
	assert.Equal(t, []string{"phi3"}, backend.pulled)
	assert.Contains(t, out.String(), "✔️ 'phi3' has been successfully downloaded.")
}

func TestSelect_EmptyCatalogGoesToDownload(t *testing.T) {
	backend := &fakeBackend{pullBody: pullOK}
	console := newConsole("qwen:0.5b", "y")
	sel, out := newTestSelector(backend, console)

	name, err := sel.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "qwen:0.5b", name)

	text := out.String()
	assert.Contains(t, text, "⚠️ I can find no Ollama models on your system.")
	assert.NotContains(t, text, "Which model shall I use")
	assert.NotContains(t, text, "[Download a new model]")
	assert.Equal(t, []string{
		"Please specify a model to download (e.g., 'qwen:0.5b'): ",
		"Shall I download 'qwen:0.5b' for you? (y/n): ",
	}, console.prompts)
}

func TestSelect_BackendUnreachable(t *testing.T) {
	backend := &fakeBackend{listErr: &ollama.ClientError{Type: ollama.ErrTypeNotRunning, Message: "Ollama is not running"}}
	sel, out := newTestSelector(backend, newConsole())

	_, err := sel.Select(context.Background())
	require.ErrorIs(t, err, ErrBackendUnavailable)
	assert.ErrorIs(t, err, ollama.ErrNotRunning)

	text := out.String()
	assert.Contains(t, text, "❌ Critical Error: I am unable to communicate with the Ollama service.")
	assert.Contains(t, text, "   Please ensure the Ollama application is installed and running on your system.")
}

func TestSelect_BackendFailure(t *testing.T) {
	backend := &fakeBackend{listErr: errors.New("HTTP 500: boom")}
	sel, out := newTestSelector(backend, newConsole())

	_, err := sel.Select(context.Background())
	require.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Contains(t, out.String(), "❌ A critical error occurred during the model scan: HTTP 500: boom")
}

func TestSelect_InterruptIsNoSelection(t *testing.T) {
	for _, cause := range []error{liner.ErrPromptAborted, io.EOF} {
		backend := &fakeBackend{models: models("llama3:8b")}
		sel, _ := newTestSelector(backend, errConsole{err: cause})

		_, err := sel.Select(context.Background())
		assert.ErrorIs(t, err, ErrNoSelection)
	}
}

func TestSelect_CancelledAtMenu(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	backend := &fakeBackend{models: models("llama3:8b")}
	console := &cancellingConsole{cancel: cancel, answer: "1", atAsk: true}
	sel, out := newTestSelector(backend, console)

	_, err := sel.Select(ctx)
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, console.asks)
	assert.NotContains(t, out.String(), "A fine choice")
}

func TestDownload_Progress(t *testing.T) {
	backend := &fakeBackend{pullBody: pullOK}
	sel, out := newTestSelector(backend, newConsole("y"))

	name, err := sel.Download(context.Background(), "phi3")
	require.NoError(t, err)
	assert.Equal(t, "phi3", name)

	text := out.String()
	assert.Contains(t, text, "Excellent. Commencing download of 'phi3'.\n")
	assert.Contains(t, text, "\rpulling manifest"+strings.Repeat(" ", 20)+"\n")
	assert.Contains(t, text, "\rpulling abc"+strings.Repeat(" ", 20)+"\n", "total without completed falls back to status")
	assert.Contains(t, text, "\rDownloading: 50.00% complete (1.0 KiB / 2.0 KiB)")
	assert.Contains(t, text, "\rDownloading: 100.00% complete (2.0 KiB / 2.0 KiB)")
	assert.Contains(t, text, "\rsuccess")

	progress := "Downloading: 100.00% complete (2.0 KiB / 2.0 KiB)"
	verifying := "verifying sha256 digest"
	wantPad := len(progress) - len(verifying)
	assert.Contains(t, text, "\r"+verifying+strings.Repeat(" ", wantPad)+"\n", "status clears the longer progress line")
}

func TestDownload_Declined(t *testing.T) {
	for _, answer := range []string{"n", "", "nope"} {
		backend := &fakeBackend{pullBody: pullOK}
		sel, out := newTestSelector(backend, newConsole(answer))

		_, err := sel.Download(context.Background(), "phi3")
		assert.ErrorIs(t, err, ErrNoSelection)
		assert.Empty(t, backend.pulled, "no pull without confirmation")
		assert.Contains(t, out.String(), "Very well. I cannot proceed without a model.")
	}
}

func TestDownload_EmptyName(t *testing.T) {
	console := newConsole()
	sel, out := newTestSelector(&fakeBackend{}, console)

	_, err := sel.Download(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, "A model name must be specified.\n", out.String())
	assert.Empty(t, console.prompts)
}

func TestDownload_ErrorEvent(t *testing.T) {
	backend := &fakeBackend{pullBody: `{"status":"pulling manifest"}
{"error":"pull model manifest: file does not exist"}
`}
	sel, out := newTestSelector(backend, newConsole("yes"))

	_, err := sel.Download(context.Background(), "nosuch")
	require.ErrorIs(t, err, ErrNoSelection)
	assert.Contains(t, out.String(), "❌ An unexpected error occurred during the download: pull model manifest: file does not exist")
	assert.NotContains(t, out.String(), "successfully downloaded")
}

func TestDownload_TransportError(t *testing.T) {
	backend := &fakeBackend{pullErr: ollama.ErrNotRunning}
	sel, out := newTestSelector(backend, newConsole("y"))

	_, err := sel.Download(context.Background(), "phi3")
	require.ErrorIs(t, err, ErrNoSelection)
	assert.NotErrorIs(t, err, ErrBackendUnavailable)
	assert.Contains(t, out.String(), "An unexpected error occurred during the download")
}

func TestPadStatus(t *testing.T) {
	assert.Equal(t, "done"+strings.Repeat(" ", 20), padStatus("done", 0))
	assert.Equal(t, "done"+strings.Repeat(" ", 36), padStatus("done", 40))
	assert.Equal(t, "下载"+strings.Repeat(" ", 26), padStatus("下载", 30), "wide runes count double")
}

func TestFormatGiB(t *testing.T) {
	assert.Equal(t, "0.0", formatGiB(0))
	assert.Equal(t, "1.0", formatGiB(1<<30))
	assert.Equal(t, "4.3", formatGiB(4_661_224_676))
}
