// Package cli is the interactive terminal front end of the image studio.
//
// An App wraps a session.Session and renders its state: the generation
// form, the private and community galleries, and the profile. Output goes
// to a writer so the whole flow can be driven from tests.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/pixelforge/image-studio/internal/client/api"
	"github.com/pixelforge/image-studio/internal/client/session"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	okColor   = color.New(color.FgGreen)
	userColor = color.New(color.FgCyan)
)

// errUsage marks a command invoked with missing arguments.
var errUsage = errors.New("usage")

type App struct {
	sess *session.Session
	in   *bufio.Scanner
	out  io.Writer
}

func NewApp(sess *session.Session, in io.Reader, out io.Writer) *App {
	return &App{sess: sess, in: bufio.NewScanner(in), out: out}
}

// Run restores the saved profile and serves commands until the input ends.
func (a *App) Run(ctx context.Context) error {
	if err := a.sess.Restore(ctx); err != nil {
		return fmt.Errorf("restore profile: %w", err)
	}
	fmt.Fprintln(a.out, "Image Studio (type 'help' for commands)")
	if u := a.sess.State().CurrentUser; u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s\n", userColor.Sprint(u.Username))
	}
	runREPL(ctx, a, a.status, a.in)
	return nil
}

func (a *App) hasProfile() bool {
	return a.sess.State().CurrentUser != nil
}

// status renders the prompt prefix: the active username plus a marker when
// an error banner is pending.
func (a *App) status() string {
	st := a.sess.State()
	name := "anonymous"
	if st.CurrentUser != nil {
		name = st.CurrentUser.Username
	}
	if st.LastError != "" {
		return fmt.Sprintf("(%s) [!]", name)
	}
	return fmt.Sprintf("(%s)", name)
}

// ask prints prompt and reads one trimmed line from the shared input.
func (a *App) ask(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt+"\n> ")
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(a.in.Text()), nil
}

func (a *App) confirm(prompt string) bool {
	answer, err := a.ask(prompt + " [y/N]")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

func (a *App) printErr(err error) {
	msg := err.Error()
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
		if apiErr.Details != "" {
			msg += ": " + apiErr.Details
		}
	}
	errColor.Fprintln(a.out, "Error:", msg)
}

func (a *App) printOK(format string, args ...any) {
	okColor.Fprintf(a.out, format+"\n", args...)
}

func (a *App) usage(text string) error {
	fmt.Fprintln(a.out, "Usage:", text)
	return errUsage
}
