package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/hpungsan/advent/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"list": true, "show": true, "open": true, "progress": true,
	"reset": true, "history": true, "serve": true,
	"help": true, "h": true,
}

// valueFlags are global flags that take a separate value argument.
var valueFlags = map[string]bool{
	"--date": true, "-date": true,
	"--dir": true, "-dir": true,
}

// firstCommand returns the first argument after the global flags, or "".
func firstCommand(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			return arg
		}
		if valueFlags[arg] {
			i++ // skip the flag's value
		}
	}
	return ""
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--help", "-h", "--version", "-v":
			return true
		}
	}
	return false
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode(args []string) bool {
	if len(args) == 0 {
		return false // No args → MCP server
	}
	if cliCommands[firstCommand(args)] {
		return true
	}
	return isHelpOrVersion(args)
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
     *
    /.\     Advent calendar
   /..'\    25 days, one gift a day
   /'.'\
  /.''.'\   Usage: advent <command> [options]
  /.'.'.\          advent --help
 "'""""'"
     |      MCP server mode requires piped input.`)
}

func main() {
	args := os.Args[1:]

	// No args + interactive terminal → show banner and exit
	if len(args) == 0 && isTerminal() {
		printBanner()
		return
	}

	// CLI mode: known subcommand, help or version
	if isCLIMode(args) {
		app := newCLIApp()
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(args) > 0 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", args[0])
		fmt.Fprintf(os.Stderr, "Run 'advent --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	baseDir, err := defaultBaseDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	sess, err := openSession(baseDir, "", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer sess.Close()

	if unknown := mcp.ValidateDisabledTools(sess.cfg.DisabledTools); len(unknown) > 0 {
		sess.log.Warn().Strs("tools", unknown).Msg("unknown tools in disabled_tools")
	}

	if err := mcp.Run(sess.svc, sess.cfg, Version); err != nil {
		sess.log.Error().Err(err).Msg("mcp server stopped")
		sess.Close()
		os.Exit(1)
	}
}
