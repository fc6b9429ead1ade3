// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/helios/internal/index"
	"github.com/jeranaias/helios/internal/model"
	"github.com/jeranaias/helios/internal/tools"
)

// SystemPrompt instructs the model to answer with a single shell command, or
// with an echo command for conversation.
const SystemPrompt = "You are Helios, a Jarvis-like AI. Your primary function is to translate natural language into a single, executable shell command. " +
	"Your secondary function is to be a witty, respectful conversationalist who addresses the user as 'sir'. " +
	"RULES: " +
	"1. If the query is a command (e.g., 'list files'), ONLY output the shell command. " +
	"2. If it's conversational (e.g., 'how are you?'), ONLY respond with your personality inside a shell `echo` command. e.g., `echo \"I am functioning within normal parameters, sir.\"`" +
	"3. Use double quotes for `echo` commands containing apostrophes."

var (
	greetings = []string{"Good day, sir.", "Welcome back, sir."}
	farewells = []string{"Goodbye, sir.", "Helios signing off."}
)

// =============================================================================
// SESSION STATE
// =============================================================================

// Session holds the state of one interactive run. It is owned by a single
// Chat and is not safe for concurrent use.
type Session struct {
	// ID correlates log lines of one run.
	ID string

	// Model is the active model name.
	Model string

	// Commands is the set of executables run without consulting the model.
	Commands index.Set

	// Memory holds the most recent conversation turns.
	Memory *model.Memory
}

// NewSession creates a session for an already selected model.
func NewSession(modelName string, commands index.Set) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Model:    modelName,
		Commands: commands,
		Memory:   model.NewMemory(model.DefaultMemoryCapacity),
	}
}

// SwitchModel makes name the active model. Memory is cleared since the
// previous turns belong to another model.
func (s *Session) SwitchModel(name string) {
	s.Model = name
	s.Memory.Clear()
}

// =============================================================================
// INTERACTION LOOP
// =============================================================================

// Chat runs the read-classify-act loop.
type Chat struct {
	session  *Session
	backend  Backend
	console  Console
	shell    tools.Runner
	selector *Selector
	out      io.Writer
	logger   *zap.Logger

	// Prompt renders the input prompt. Defaults to DynamicPrompt.
	Prompt func() string

	// Pick returns an index in [0, n) to choose a greeting or farewell.
	Pick func(n int) int
}

// NewChat wires a loop around session.
func NewChat(session *Session, backend Backend, console Console, shell tools.Runner, selector *Selector, out io.Writer, logger *zap.Logger) *Chat {
	return &Chat{
		session:  session,
		backend:  backend,
		console:  console,
		shell:    shell,
		selector: selector,
		out:      out,
		logger:   logger.With(zap.String("session", session.ID)),
		Prompt:   DynamicPrompt,
		Pick:     rand.IntN,
	}
}

// Run greets the user and processes input until exit, Ctrl+C, end of input
// or cancellation of ctx. A farewell is always printed. Errors within an
// iteration are reported and do not end the loop.
func (c *Chat) Run(ctx context.Context) error {
	fmt.Fprintf(c.out, "\n%s Helios is online, using model: %s\n", greetings[c.Pick(len(greetings))], c.session.Model)
	fmt.Fprintln(c.out, DimStyle.Render("Type 'change model' to switch, 'exit' to quit. Native commands are executed instantly."))
	defer fmt.Fprintf(c.out, "\n%s\n", farewells[c.Pick(len(farewells))])

	for {
		line, err := readLine(ctx, c.console, c.Prompt())
		if err != nil {
			if isInterrupt(err) || ctx.Err() != nil {
				c.logger.Debug("input ended", zap.Error(err))
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if done := c.iterate(ctx, line); done {
			return nil
		}
	}
}

// iterate handles one line and reports whether the loop should end.
func (c *Chat) iterate(ctx context.Context, line string) (done bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("iteration panicked", zap.Any("panic", r))
			c.unexpected(fmt.Errorf("%v", r))
			done = false
		}
	}()

	line = strings.TrimSpace(line)
	route := Classify(line, c.session.Commands)
	c.logger.Debug("input classified", zap.Stringer("route", route))

	var err error
	switch route {
	case RouteEmpty:
		return false
	case RouteExit:
		return true
	case RouteChangeModel:
		c.changeModel(ctx)
		return false
	case RouteDirect:
		err = c.runDirect(line)
	case RouteQuery:
		err = c.query(ctx, line)
	}

	if err == nil {
		return false
	}
	if ctx.Err() != nil || isInterrupt(err) {
		return true
	}

	var exitErr *tools.ExitError
	if errors.As(err, &exitErr) {
		c.logger.Debug("command failed", zap.String("command", exitErr.Command), zap.Int("exit_code", exitErr.Code))
		fmt.Fprintf(c.out, "Sir, the command '%s' failed with return code %d.\n", exitErr.Command, exitErr.Code)
		return false
	}

	c.logger.Warn("iteration failed", zap.Stringer("route", route), zap.Error(err))
	c.unexpected(err)
	return false
}

func (c *Chat) changeModel(ctx context.Context) {
	name, err := c.selector.Select(ctx)
	if err != nil {
		c.logger.Info("model unchanged", zap.String("model", c.session.Model), zap.Error(err))
		fmt.Fprintln(c.out, "\nVery well. Remaining with the current model.")
		return
	}

	c.session.SwitchModel(name)
	c.logger.Info("model changed", zap.String("model", name))
	fmt.Fprintf(c.out, "\nModel changed to '%s'. How may I assist you, sir?\n", name)
}

// runDirect passes the line to the shell unchanged. The exit status is not
// reported; the command's own output speaks for it.
func (c *Chat) runDirect(line string) error {
	err := c.shell.Run(line)

	var exitErr *tools.ExitError
	if errors.As(err, &exitErr) {
		c.logger.Debug("direct command exited", zap.Int("exit_code", exitErr.Code))
		return nil
	}
	return err
}

func (c *Chat) query(ctx context.Context, line string) error {
	turns := make([]model.Turn, 0, c.session.Memory.Len()+2)
	turns = append(turns, model.SystemTurn(SystemPrompt))
	turns = append(turns, c.session.Memory.Snapshot()...)
	turns = append(turns, model.UserTurn(line))

	start := time.Now()
	resp, err := c.backend.Chat(ctx, c.session.Model, model.ToOllamaMessages(turns))
	if err != nil {
		return err
	}

	command := NormalizeReply(resp.Message.Content)
	c.logger.Debug("model replied",
		zap.String("model", c.session.Model),
		zap.Duration("latency", time.Since(start)),
		zap.Duration("server_time", resp.TotalTime()),
		zap.Int("history_turns", c.session.Memory.Len()))

	c.session.Memory.Append(model.UserTurn(line))
	c.session.Memory.Append(model.AssistantTurn(command))

	if command == "" {
		fmt.Fprintln(c.out, "My apologies, sir, but I am unable to decipher that request.")
		return nil
	}

	if IsEcho(command) {
		fmt.Fprintln(c.out, RenderEcho(command))
		return nil
	}

	fmt.Fprintf(c.out, "Helios suggests the command: %s\n", renderLines(command))
	answer, err := ask(ctx, c.console, "Shall I execute this, sir? (y/n): ")
	if err != nil {
		return err
	}
	if !isYes(answer) {
		fmt.Fprintln(c.out, "Very well. Command cancelled.")
		return nil
	}
	return c.shell.Run(command)
}

func (c *Chat) unexpected(err error) {
	fmt.Fprintf(c.out, "\nAn unexpected error has occurred, sir: %v\n", err)
}

// renderLines styles each line of a suggested command on its own so
// multi-line commands are not padded to a common width.
func renderLines(command string) string {
	lines := strings.Split(command, "\n")
	for i, l := range lines {
		lines[i] = SuggestionStyle.Render(l)
	}
	return strings.Join(lines, "\n")
}
