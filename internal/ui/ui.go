// Package ui reconstructs the teacher's context-scoped terminal UI
// (ui.FromContext(ctx), u.Out().Printf) at the scope this repo exercises:
// dry-run previews and warning output for cmd/extradoc. The core packages
// never import ui — only the CLI does (spec.md §5's "no shared resources at
// the core level").
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

type ctxKey struct{}

// UI carries the CLI's stdout/stderr streams and a color profile detected
// once at startup.
type UI struct {
	out     io.Writer
	errOut  io.Writer
	profile termenv.Profile
}

// New builds a UI writing to stdout/stderr, detecting the terminal's color
// profile the way termenv's examples do (termenv.EnvColorProfile honors
// NO_COLOR and dumb terminals automatically).
func New() *UI {
	return &UI{out: os.Stdout, errOut: os.Stderr, profile: termenv.EnvColorProfile()}
}

// WithUI attaches u to ctx for retrieval by FromContext.
func WithUI(ctx context.Context, u *UI) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the UI attached to ctx, or a fresh stdout/stderr UI
// if none was attached — callers never need a nil check.
func FromContext(ctx context.Context) *UI {
	if u, ok := ctx.Value(ctxKey{}).(*UI); ok {
		return u
	}
	return New()
}

// Printer writes tab-separated status lines to one stream.
type Printer struct {
	w io.Writer
}

func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Out returns the printer for normal status output.
func (u *UI) Out() *Printer { return &Printer{w: u.out} }

// Warn prints a yellow warning line to stderr, used for spec.md §7's
// warning side channel (skipped section breaks, skipped horizontal rules).
func (u *UI) Warn(format string, args ...any) {
	styled := termenv.String(fmt.Sprintf(format, args...)).Foreground(u.profile.Color("3"))
	fmt.Fprintln(u.errOut, styled)
}

// Diff prints one change-tree node's op in the color the teacher's
// dry-run/explain output would reasonably use: green for added, red for
// deleted, yellow for modified.
func (u *UI) Diff(op, line string) {
	var color termenv.Color
	switch op {
	case "Added":
		color = u.profile.Color("2")
	case "Deleted":
		color = u.profile.Color("1")
	case "Modified":
		color = u.profile.Color("3")
	default:
		color = u.profile.Color("7")
	}
	fmt.Fprintln(u.out, termenv.String(op+"\t"+line).Foreground(color))
}
