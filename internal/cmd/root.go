// Package cmd implements the cmdseq command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexander-akhmetov/cmdseq/internal/config"
	"github.com/alexander-akhmetov/cmdseq/internal/debug"
	"github.com/alexander-akhmetov/cmdseq/internal/driver"
	"github.com/alexander-akhmetov/cmdseq/internal/fingerprint"
	"github.com/alexander-akhmetov/cmdseq/internal/position"
	"github.com/alexander-akhmetov/cmdseq/internal/schedule"
	"github.com/alexander-akhmetov/cmdseq/internal/shell"
	"github.com/alexander-akhmetov/cmdseq/internal/timing"
)

// Version information set from main.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

const longHelp = `cmdseq runs one command from a list each time it is invoked, cycling
through the list. Each command runs <count> times in a row before the next
one takes over. The position is kept in <dir>/cmdseq.<fingerprint>, where the
fingerprint is derived from the full argument list, so every distinct
invocation keeps its own position.

Commands run through the shell (sh -c) with stdout and stderr attached and
stdin read from the null device.

Exit status:
  0  the command ran and succeeded
  1  state file, I/O or shell start failure, or the run was interrupted
  2  help was requested or a flag is unknown
  3  the <count> <command> pairs are malformed
  A command that runs and fails makes cmdseq exit with that command's own
  status, which can overlap with the codes above.

Examples:
  # from cron: back up incrementally six times, then once in full
  cmdseq 6 'backup --incremental' 1 'backup --full'

  cmdseq -d /var/lib/cmdseq 3 'echo a' 2 'echo b' 1 'echo c'`

// Options holds flag values for one invocation.
type Options struct {
	Dir            string
	Shell          string
	KeepOnFailure  bool
	Help           bool
	ConfigDir      string // overrides the global config dir; used by tests
	Stdout, Stderr io.Writer

	// argv is the raw argument list after the program name; it is the
	// fingerprint input.
	argv []string
}

// NewRootCommand creates the root command for argv.
func NewRootCommand(argv []string, opts *Options) *cobra.Command {
	opts.argv = argv

	c := &cobra.Command{
		Use:           "cmdseq [-d dir] <count> <command> [<count> <command> ...]",
		Short:         "Run the next command of a repeating sequence",
		Long:          longHelp,
		Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(c *cobra.Command, args []string) error {
			return runSequence(c.Context(), opts, args)
		},
	}

	c.SetArgs(argv)
	if opts.Stdout != nil {
		c.SetOut(opts.Stdout)
	}
	if opts.Stderr != nil {
		c.SetErr(opts.Stderr)
	}

	// stop at the first positional so command strings are never read as flags
	c.Flags().SetInterspersed(false)
	c.Flags().StringVarP(&opts.Dir, "dir", "d", "", "directory for state files (default: config, $CMDSEQ_STATE_DIR or system temp dir)")
	c.Flags().StringVarP(&opts.Shell, "shell", "s", "", "shell used to run commands (default: sh)")
	c.Flags().BoolVar(&opts.KeepOnFailure, "keep-on-failure", false, "do not advance when the command exits non-zero")
	c.Flags().BoolVarP(&opts.Help, "help", "h", false, "show this help and exit")

	c.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		if arg := negativeCountArg(opts.argv, err); arg != "" {
			_, countErr := schedule.ParseCount(arg)
			return WrapExitError(ExitBadArgs, "", countErr)
		}
		return WrapExitError(ExitUsage, "", err)
	})

	return c
}

var negativeCount = regexp.MustCompile(`^-[0-9]`)

// negativeCountArg returns the argument pflag rejected when it looks like a
// negative count rather than a flag, e.g. "-1" in "cmdseq -1 'echo hi'".
func negativeCountArg(argv []string, err error) string {
	for _, a := range argv {
		if a == "--" {
			break
		}
		if negativeCount.MatchString(a) && strings.HasSuffix(err.Error(), " in "+a) {
			return a
		}
	}
	return ""
}

// Execute runs cmdseq for argv and returns the process exit code.
func Execute(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	opts := &Options{Stdout: stdout, Stderr: stderr}
	return execute(ctx, argv, opts)
}

func execute(ctx context.Context, argv []string, opts *Options) int {
	root := NewRootCommand(argv, opts)
	err := root.ExecuteContext(ctx)

	// cobra prints help and returns nil for -h
	if err == nil && opts.Help {
		return ExitUsage
	}
	if err == nil {
		return ExitSuccess
	}

	code := GetExitCode(err)
	printError(root.ErrOrStderr(), err, code)
	return code
}

func printError(w io.Writer, err error, code int) {
	st := newStyles(w)
	fmt.Fprintf(w, "%s %s\n", st.errLabel.Render("Error:"), st.errText.Render(err.Error()))
	if code == ExitUsage || code == ExitBadArgs {
		fmt.Fprintln(w, st.hint.Render("Run 'cmdseq --help' for usage."))
	}
}

func runSequence(ctx context.Context, opts *Options, args []string) error {
	sched, err := schedule.Parse(args)
	if err != nil {
		return WrapExitError(ExitBadArgs, "", err)
	}
	timing.Log("schedule parsed")

	cfg, err := loadConfig(opts)
	if err != nil {
		return WrapExitError(ExitFailure, "load config", err)
	}
	debug.Logf("config sources: %v", cfg.Sources())

	fp := fingerprint.Of(opts.argv)
	path := position.Path(cfg.ResolvedStateDir(), fp)
	debug.Logf("state file: %s", path)

	d := &driver.Driver{
		Store: position.NewFileStore(path),
		Runner: &shell.Exec{
			Shell:  cfg.Shell,
			Stdout: opts.Stdout,
			Stderr: opts.Stderr,
		},
		AdvanceOnFailure: cfg.AdvanceOnFailure && !opts.KeepOnFailure,
	}

	res, err := d.Run(ctx, sched)
	timing.Log("command finished")
	if err != nil {
		return WrapExitError(ExitFailure, "", err)
	}

	if res.RunErr != nil {
		code := ExitFailure
		var exitErr *shell.ExitError
		if errors.As(res.RunErr, &exitErr) && exitErr.Code > 0 {
			code = exitErr.Code
		}
		return WrapExitError(code, "", res.RunErr)
	}
	return nil
}

func loadConfig(opts *Options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigDir != "" {
		cfg, err = config.LoadWithDir(opts.ConfigDir)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyCLIFlags(opts.Dir, opts.Shell)
	return cfg, nil
}
