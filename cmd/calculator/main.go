package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calculator"
)

type params struct {
	in       string
	given    []string
	echo     bool
	history  string
	vars     string
	noColor  bool
	logLevel string
}

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var p params
	cmd := &cobra.Command{
		Use:   "calculator [expression...]",
		Short: "Evaluate integer expressions with variables",
		Long: `Evaluate arbitrary-precision integer expressions with + - * / and brackets,
and assign variables with "name = expression".

With arguments, each argument is evaluated as a line and the program exits.
Otherwise lines are read from --in, or interactively from the terminal.

Every flag can also be set with a CALCULATOR_<FLAG> environment variable,
e.g. CALCULATOR_NO_COLOR=true.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return checkEnvironmentVariables(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(&p, args, cmd.OutOrStdout(), cmd.InOrStdin())
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&p.in, "in", "", "read lines from a file instead of the terminal (- for stdin)")
	flags.StringArrayVar(&p.given, "given", nil, "name=value variable definition (any number of times)")
	flags.BoolVar(&p.echo, "echo", false, "print the postfix order of each expression")
	flags.StringVar(&p.history, "history", defaultHistory(), "interactive history file")
	flags.StringVar(&p.vars, "vars", "", "file to load variables from at start and save them to at exit")
	flags.BoolVar(&p.noColor, "no-color", false, "disable colored errors")
	flags.StringVar(&p.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	return cmd
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".calculator_history")
}

func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %v", level)
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log, nil
}

func run(p *params, args []string, out io.Writer, in io.Reader) error {
	log, err := newLogger(p.logLevel)
	if err != nil {
		return err
	}
	ctx := calculator.NewContext(calculator.Logger(log))
	if p.vars != "" {
		if err := loadVars(ctx, p.vars); err != nil {
			return err
		}
	}
	for _, d := range p.given {
		name, val, ok := strings.Cut(d, "=")
		if !ok {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, d)
		}
		name = strings.TrimSpace(name)
		if _, err := ctx.EvalString(name + " = " + strings.TrimSpace(val)); err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
	}

	s := newSession(ctx, out, log, !p.noColor)
	s.echo = p.echo
	switch {
	case len(args) > 0:
		for _, arg := range args {
			s.line(arg)
		}
	case p.in == "-":
		err = s.run(in)
	case p.in != "":
		err = runFile(s, p.in)
	default:
		err = prompt(s, p.history)
	}
	if err != nil {
		return err
	}
	if p.vars != "" {
		return s.write(p.vars)
	}
	return nil
}

func loadVars(ctx *calculator.Context, path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	return ctx.LoadVars(f)
}

func runFile(s *session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.run(f)
}

// prompt runs an interactive session until the user enters /exit, Ctrl+C,
// or Ctrl+D.
func prompt(s *session, history string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(s.complete)
	loadHistory(line, history)
	defer saveHistory(line, history)

	for !s.exit {
		input, err := line.Prompt("> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			s.command("/exit")
			return nil
		}
		if err != nil {
			return err
		}
		s.line(input)
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
	}
	return nil
}

func loadHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	if f, err := os.Open(path); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
}

func saveHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	if f, err := os.Create(path); err == nil {
		line.WriteHistory(f)
		f.Close()
	}
}
