// Package ui implements the line-oriented console the agent talks
// through: blocking input prompts, yes/no confirmations, and rendered
// model output.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	statusStyle  = lipgloss.NewStyle().Faint(true)
	confirmStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	toolStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// Console reads lines from in and writes styled output to out. It is
// used by a single session thread; all reads block until a line arrives.
type Console struct {
	reader   *bufio.Reader
	out      io.Writer
	renderer *glamour.TermRenderer
}

// NewConsole creates a console over the given streams. The markdown
// renderer is optional; without it model output is printed raw.
func NewConsole(in io.Reader, out io.Writer) *Console {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		renderer = nil
	}
	return &Console{
		reader:   bufio.NewReader(in),
		out:      out,
		renderer: renderer,
	}
}

// ReadInput prompts for one line of user text and returns it trimmed.
// Returns io.EOF when the input stream closes.
func (c *Console) ReadInput(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(c.out, promptStyle.Render(prompt)+" ")
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Only "y" and "yes" (case-insensitive)
// count as affirmative; anything else, including an empty line, declines.
func (c *Console) Confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := c.readConfirmLine(ctx, prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (c *Console) readConfirmLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(c.out, confirmStyle.Render(prompt)+" [y/N] ")
	line, err := c.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && strings.TrimSpace(line) != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// WriteMessage displays a model reply. Markdown is rendered for the
// terminal when a renderer is available.
func (c *Console) WriteMessage(content string) {
	if content == "" {
		return
	}
	if c.renderer != nil {
		if rendered, err := c.renderer.Render(content); err == nil {
			fmt.Fprint(c.out, rendered)
			return
		}
	}
	fmt.Fprintln(c.out, content)
}

// WriteToolResult displays the raw output of a tool execution.
func (c *Console) WriteToolResult(name, content string) {
	fmt.Fprintln(c.out, toolStyle.Render(fmt.Sprintf("[%s]", name)))
	if content != "" {
		fmt.Fprintln(c.out, content)
	}
}

// WriteNotice displays a user-visible warning or error.
func (c *Console) WriteNotice(message string) {
	fmt.Fprintln(c.out, noticeStyle.Render(message))
}

// WriteStatus displays an ephemeral progress line.
func (c *Console) WriteStatus(phase, message string) {
	fmt.Fprintln(c.out, statusStyle.Render(fmt.Sprintf("[%s] %s", phase, message)))
}
