package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/slab/lang"
	"github.com/ardnew/slab/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand] for the edit-reload-retry loop.
// It opens the template file in the user's editor and reloads it. When the
// result does not parse, the user is asked whether to edit again; declining
// keeps the previous document.
type editCommand struct {
	session *Session
	ctxFunc func() context.Context
	logger  log.Logger
	doc     document
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit loop. It returns [ErrEditDeclined] if the user
// gives up on a template that does not parse.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	if c.session.Path == "" {
		return ErrNoEditFile
	}

	for {
		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, c.session.Path); err != nil {
			return err
		}

		doc, err := c.session.load(ctx)
		if err == nil {
			_, err = lang.ParseString(ctx, doc.template, c.session.Options...)
		}

		c.logger.TraceContext(ctx, "editor reload",
			slog.String("path", c.session.Path),
			slog.Bool("success", err == nil),
		)

		if err == nil {
			c.doc = doc

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", err)

		var pe *lang.ParseError
		if errors.As(err, &pe) {
			fmt.Fprintln(c.stderr, pe.Snippet())
		}

		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor launches $EDITOR on path and waits for it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
