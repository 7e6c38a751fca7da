// Package cmd implements the metaloader CLI commands.
//
// A root command dispatches to subcommands (list, render, preview), each
// parsing its own flags.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/metaloader/cmd/metaloader/internal/config"
	"github.com/go-drift/metaloader/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(env *Env, args []string) error
}

// Env carries what global flags resolved into.
type Env struct {
	Config  *config.Resolved
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
}

var rootCmd = &Command{
	Name:  "metaloader",
	Short: "metaloader - metaball loading indicators",
	Long: `metaloader renders the metaball loading indicators as PNG frames,
sprite sheets, or live in the terminal.

Use "metaloader <command> --help" for more information about a command.`,
	Usage: "metaloader [--config FILE] <command> [flags]",
}

var (
	commands = make(map[string]*Command)
	ordered  []*Command
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	ordered = append(ordered, cmd)
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printHelp(stdout)
		return nil
	}

	var configPath string
	var verbose bool
	var filtered []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(filtered) > 0 {
			filtered = append(filtered, arg)
			continue
		}
		switch arg {
		case "-h", "--help", "help":
			printHelp(stdout)
			return nil
		case "-v", "--version", "version":
			fmt.Fprintf(stdout, "metaloader version %s (built %s)\n", Version, BuildTime)
			return nil
		case "--verbose":
			verbose = true
		case "--config":
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a file path")
			}
			configPath = args[i+1]
			i++
		default:
			if strings.HasPrefix(arg, "--config=") {
				configPath = strings.TrimPrefix(arg, "--config=")
				continue
			}
			filtered = append(filtered, arg)
		}
	}
	if len(filtered) == 0 {
		printHelp(stdout)
		return nil
	}

	name := filtered[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", name)
		printHelp(stderr)
		return fmt.Errorf("unknown command: %s", name)
	}

	cmdArgs := filtered[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(stdout, cmd)
			return nil
		}
	}

	errors.SetHandler(&errors.LogHandler{Verbose: verbose, Out: stderr})
	cfg, err := config.Discover(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if verbose && cfg.Path != "" {
		fmt.Fprintf(stderr, "Using config %s\n", cfg.Path)
	}
	return cmd.Run(&Env{Config: cfg, Verbose: verbose, Stdout: stdout, Stderr: stderr}, cmdArgs)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, rootCmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", rootCmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range ordered {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --config FILE        Use FILE instead of the nearest metaloader.yaml")
	fmt.Fprintln(w, "  --verbose            Log errors with stack traces")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  metaloader list                          List the loaders")
	fmt.Fprintln(w, "  metaloader render round -o frames        Write PNG frames")
	fmt.Fprintln(w, "  metaloader render mix -sheet mix.png     Write a sprite sheet")
	fmt.Fprintln(w, "  metaloader preview chase                 Animate in the terminal")
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}
