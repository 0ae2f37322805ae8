package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/hpungsan/advent/internal/errors"
	"github.com/hpungsan/advent/internal/ops"
	"github.com/hpungsan/advent/internal/web"
)

// stdinIsTerminal reports whether reset may prompt for confirmation.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// sessionHolder opens the session lazily so help and version need no database.
type sessionHolder struct {
	sess *session
}

// get returns the session, opening it from the global --dir and --date flags on first use.
func (h *sessionHolder) get(c *cli.Context) (*session, error) {
	if h.sess != nil {
		return h.sess, nil
	}
	baseDir := c.String("dir")
	if baseDir == "" {
		dir, err := defaultBaseDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	sess, err := openSession(baseDir, c.String("date"), c.App.ErrWriter)
	if err != nil {
		return nil, err
	}
	h.sess = sess
	return sess, nil
}

func (h *sessionHolder) close() error {
	if h.sess == nil {
		return nil
	}
	err := h.sess.Close()
	h.sess = nil
	return err
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp() *cli.App {
	h := &sessionHolder{}

	app := &cli.App{
		Name:    "advent",
		Usage:   "Date-gated advent calendar",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Simulate today's date (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "dir", Usage: "Data directory (default ~/.advent)"},
		},
		Commands: []*cli.Command{
			listCmd(h),
			showCmd(h),
			openCmd(h),
			progressCmd(h),
			resetCmd(h),
			historyCmd(h),
			serveCmd(h),
		},
		After: func(*cli.Context) error {
			return h.close()
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// listCmd creates the list command.
func listCmd(h *sessionHolder) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all days with unlock dates and open state",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "opened", Usage: "Only list opened days"},
		},
		Action: func(c *cli.Context) error {
			sess, err := h.get(c)
			if err != nil {
				return outputError(err)
			}

			output, err := sess.svc.List(c.Context, ops.ListInput{OpenedOnly: c.Bool("opened")})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// showCmd creates the show command.
func showCmd(h *sessionHolder) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the content of an opened day",
		ArgsUsage: "<day>",
		Action: func(c *cli.Context) error {
			day, err := parseDayArg(c)
			if err != nil {
				return outputError(err)
			}
			sess, err := h.get(c)
			if err != nil {
				return outputError(err)
			}

			output, err := sess.svc.Show(c.Context, ops.ShowInput{Day: day})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// openCmd creates the open command.
func openCmd(h *sessionHolder) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open a day once its date has come",
		ArgsUsage: "<day>",
		Action: func(c *cli.Context) error {
			day, err := parseDayArg(c)
			if err != nil {
				return outputError(err)
			}
			sess, err := h.get(c)
			if err != nil {
				return outputError(err)
			}

			output, err := sess.svc.Open(c.Context, ops.OpenInput{Day: day})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// progressCmd creates the progress command.
func progressCmd(h *sessionHolder) *cli.Command {
	return &cli.Command{
		Name:  "progress",
		Usage: "Show how many days are open",
		Action: func(c *cli.Context) error {
			sess, err := h.get(c)
			if err != nil {
				return outputError(err)
			}

			output, err := sess.svc.Progress(c.Context)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// resetCmd creates the reset command.
func resetCmd(h *sessionHolder) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Close every day and forget saved progress",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") {
				if !stdinIsTerminal() {
					return outputError(errors.NewInvalidRequest("reset needs --yes when stdin is not a terminal"))
				}
				ok, err := confirm(c.App.Reader, c.App.ErrWriter, "Reset the calendar and close every opened day?")
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				if !ok {
					return outputJSON(c.App.Writer, map[string]any{"reset": false, "message": "Reset cancelled"})
				}
			}

			sess, err := h.get(c)
			if err != nil {
				return outputError(err)
			}

			output, err := sess.svc.Reset(c.Context)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(h *sessionHolder) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List past open attempts and resets, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "day", Aliases: []string{"d"}, Usage: "Only events for this day (0 for resets)"},
			&cli.StringFlag{Name: "outcome", Aliases: []string{"o"}, Usage: "Only events with this outcome: opened|rejected|reset"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultHistoryLimit, Usage: "Max events to return"},
			&cli.IntFlag{Name: "offset", Usage: "Events to skip"},
		},
		Action: func(c *cli.Context) error {
			sess, err := h.get(c)
			if err != nil {
				return outputError(err)
			}

			input := ops.HistoryInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			}
			if c.IsSet("day") {
				day := c.Int("day")
				input.Day = &day
			}
			if outcome := c.String("outcome"); outcome != "" {
				input.Outcome = &outcome
			}

			output, err := sess.svc.History(c.Context, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(h *sessionHolder) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the calendar web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Interface to listen on (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port to listen on (default from config)"},
		},
		Action: func(c *cli.Context) error {
			sess, err := h.get(c)
			if err != nil {
				return outputError(err)
			}

			bind := sess.cfg.WebBind
			if c.IsSet("bind") {
				bind = c.String("bind")
			}
			port := sess.cfg.WebPort
			if c.IsSet("port") {
				port = c.Int("port")
			}

			srv, err := web.NewServer(sess.svc, sess.log, Version, bind, port)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if err := web.Run(srv, sess.log); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON marshals result to w as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if aErr, ok := err.(*errors.AdventError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", aErr.Code, aErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// parseDayArg reads the positional day number.
func parseDayArg(c *cli.Context) (int, error) {
	if c.NArg() == 0 {
		return 0, errors.NewInvalidRequest("day is required")
	}
	raw := c.Args().First()
	day, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewInvalidRequest(fmt.Sprintf("day must be an integer, got %q", raw))
	}
	return day, nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
