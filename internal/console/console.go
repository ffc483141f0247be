// Package console renders user-facing output for the vibe CLI. A Console is
// an explicit value passed to each flow so output can be captured in tests.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Tone selects the border color of a panel.
type Tone int

const (
	ToneInfo Tone = iota
	ToneSuccess
	ToneWarn
	ToneError
)

var toneColors = map[Tone]lipgloss.Color{
	ToneInfo:    lipgloss.Color("#5B8DEF"),
	ToneSuccess: lipgloss.Color("#4CAF50"),
	ToneWarn:    lipgloss.Color("#F7B801"),
	ToneError:   lipgloss.Color("#FF6B6B"),
}

// Console writes styled output to a single writer.
type Console struct {
	out      io.Writer
	renderer *lipgloss.Renderer
}

// New creates a Console writing to out. Color support is detected from out,
// so buffers and pipes receive plain text.
func New(out io.Writer) *Console {
	return &Console{out: out, renderer: lipgloss.NewRenderer(out)}
}

// Panel prints body inside a rounded border with a bold title line.
func (c *Console) Panel(title, body string, tone Tone) {
	head := c.renderer.NewStyle().Bold(true).Foreground(toneColors[tone]).Render(title)
	box := c.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(toneColors[tone]).
		Padding(0, 1).
		Render(head + "\n" + body)
	fmt.Fprintln(c.out, box)
}

// Heading prints a bold line preceded by a blank line.
func (c *Console) Heading(text string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.renderer.NewStyle().Bold(true).Render(text))
}

// Warn prints a yellow warning line.
func (c *Console) Warn(format string, args ...any) {
	msg := c.renderer.NewStyle().Foreground(toneColors[ToneWarn]).Render("Warning: " + fmt.Sprintf(format, args...))
	fmt.Fprintln(c.out, msg)
}

// Success prints a green line.
func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.out, c.renderer.NewStyle().Foreground(toneColors[ToneSuccess]).Render(fmt.Sprintf(format, args...)))
}

// Muted prints a dimmed line.
func (c *Console) Muted(format string, args ...any) {
	fmt.Fprintln(c.out, c.renderer.NewStyle().Foreground(lipgloss.Color("#888888")).Render(fmt.Sprintf(format, args...)))
}

// Printf writes unstyled formatted text.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Println writes an unstyled line.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}
