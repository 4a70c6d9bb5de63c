// cmdsh is an interactive command shell over a prefix-matching command
// grammar. Without arguments it reads lines from the terminal; -c runs a
// single line and exits with a code describing the outcome.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/footprint-tools/commands/internal/app"
	"github.com/footprint-tools/commands/internal/cli"
	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/grammarfile"
	"github.com/footprint-tools/commands/internal/log"
	"github.com/footprint-tools/commands/internal/shell"
	"github.com/footprint-tools/commands/internal/usage"
	"github.com/footprint-tools/commands/parser"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	grammar     string
	command     string
	noColor     bool
	noHistory   bool
	logLevel    string
	dumpGrammar bool
	version     bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	flagSet := pflag.NewFlagSet("cmdsh", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.grammar, "grammar", "", "load the command grammar from a YAML file")
	flagSet.StringVarP(&opts.command, "command", "c", "", "run one line and exit")
	flagSet.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flagSet.BoolVar(&opts.noHistory, "no-history", false, "do not record or recall history")
	flagSet.StringVar(&opts.logLevel, "log-level", "", "minimum log level: debug, info, warn, error")
	flagSet.BoolVar(&opts.dumpGrammar, "dump-grammar", false, "print the active grammar as YAML and exit")
	flagSet.BoolVarP(&opts.version, "version", "v", false, "print the version and exit")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: cmdsh [flags]\n\nFlags:\n%s", flagSet.FlagUsages())
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return opts, err
		}
		return opts, &usage.Error{Kind: usage.ErrInvalidFlag, Message: err.Error(), Err: err}
	}
	if flagSet.NArg() > 0 {
		return opts, usage.InvalidFlag(flagSet.Arg(0))
	}

	switch strings.ToLower(opts.logLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return opts, usage.InvalidFlag("--log-level " + opts.logLevel)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		return fail(stderr, err)
	}

	if opts.version {
		fmt.Fprintf(stdout, "cmdsh %s\n", app.Version)
		return 0
	}

	appOpts := app.DefaultOptions()
	appOpts.Output = stdout
	appOpts.StyleEnabled = isTerminal(stdout) && !opts.noColor
	if opts.noHistory {
		appOpts.HistoryEnabled = false
	}
	if opts.logLevel != "" {
		appOpts.LogLevel = log.ParseLevel(opts.logLevel)
	}

	a, err := app.New(appOpts)
	if err != nil {
		return fail(stderr, err)
	}
	defer func() { _ = app.Close(a) }()

	root, err := loadGrammar(a, opts.grammar)
	if err != nil {
		return fail(stderr, err)
	}

	if opts.dumpGrammar {
		data, err := grammarfile.Marshal(root)
		if err != nil {
			return fail(stderr, err)
		}
		_, _ = stdout.Write(data)
		return 0
	}

	if opts.command != "" {
		sh := shell.New(a, root)
		if err := sh.RunLine(opts.command); err != nil {
			return exitCode(err)
		}
		return 0
	}

	interactive := isTerminal(stdin) && isTerminal(stdout)
	if interactive {
		if err := a.Config.Set("last_session", a.SessionID); err != nil {
			a.Logger.Warn("cmdsh: remember session: %v", err)
		}
	}

	sh := shell.New(a, root, shell.WithInput(stdin), shell.Interactive(interactive))
	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fail(stderr, err)
	}
	return 0
}

// loadGrammar returns the built-in grammar, or the one in path with the
// built-in help, browse and exit commands added.
func loadGrammar(a *domain.Application, path string) (*parser.RootNode, error) {
	if path == "" {
		return cli.Build(a)
	}

	var root *parser.RootNode
	tree, err := grammarfile.Load(path, cli.Echo(a))
	if err != nil {
		return nil, usage.InvalidGrammar(path, err)
	}
	for _, c := range cli.Builtins(a, func() *parser.RootNode { return root }) {
		tree.Command(c)
	}
	root, err = tree.Finalize()
	if err != nil {
		return nil, usage.InvalidGrammar(path, err)
	}
	return root, nil
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "error: %v\n", err)
	return exitCode(err)
}

func exitCode(err error) int {
	var uerr *usage.Error
	if errors.As(err, &uerr) {
		return uerr.GetExitCode()
	}
	return 1
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
