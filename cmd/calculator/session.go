package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"github.com/zephyrtronium/calculator"
)

const help = `The program calculates arbitrary-precision integer expressions.

Operators: + - * / and brackets ( ). Runs of + and - fold into one
operator, so "1 - - 2" is 3. Division truncates toward zero. Separate
operators from numbers and names with spaces.

Assign a variable with "name = expression". Names are Latin letters.

Commands:
/help           show this message
/vars           list variables
/con <expr>     show an expression in postfix order
/read <file>    load variables from a file
/write <file>   save variables to a file
/exit           quit`

// commands are the names recognized after a slash.
var commands = []string{"/con", "/exit", "/help", "/read", "/vars", "/write"}

// session connects a calculator context to input lines and output.
type session struct {
	ctx  *calculator.Context
	out  io.Writer
	log  logrus.FieldLogger
	fail *color.Color
	// echo prints the postfix order of each expression before its result.
	echo bool
	// exit is set once the user asks to quit.
	exit bool
}

func newSession(ctx *calculator.Context, out io.Writer, log logrus.FieldLogger, colored bool) *session {
	fail := color.New(color.FgRed)
	if !colored {
		fail.DisableColor()
	}
	return &session{ctx: ctx, out: out, log: log, fail: fail}
}

// line handles one line of input: a command if it starts with a slash,
// otherwise an expression. Empty lines do nothing.
func (s *session) line(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if strings.HasPrefix(text, "/") {
		s.command(text)
		return
	}
	s.eval(text)
}

func (s *session) eval(text string) {
	e, err := s.ctx.Parse(text)
	if err != nil {
		s.report(err)
		return
	}
	if s.echo {
		fmt.Fprintln(s.out, e)
	}
	r, err := s.ctx.Eval(e)
	switch {
	case err != nil:
		s.report(err)
	case r != nil:
		fmt.Fprintln(s.out, r)
	}
}

func (s *session) report(err error) {
	s.fail.Fprintln(s.out, err)
}

func (s *session) command(text string) {
	name, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "/exit":
		fmt.Fprintln(s.out, "Bye!")
		s.exit = true
	case "/help":
		fmt.Fprintln(s.out, help)
	case "/vars":
		s.vars()
	case "/con":
		e, err := s.ctx.Parse(arg)
		if err != nil {
			s.report(err)
			return
		}
		fmt.Fprintln(s.out, e)
	case "/read":
		if arg == "" {
			s.fail.Fprintln(s.out, "usage: /read <file>")
			return
		}
		if err := s.read(arg); err != nil {
			s.report(err)
		}
	case "/write":
		if arg == "" {
			s.fail.Fprintln(s.out, "usage: /write <file>")
			return
		}
		if err := s.write(arg); err != nil {
			s.report(err)
		}
	default:
		s.fail.Fprintln(s.out, "Unknown command")
	}
}

func (s *session) vars() {
	table := tablewriter.NewWriter(s.out)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"name", "value"})
	for _, name := range s.ctx.Vars() {
		table.Append([]string{name, s.ctx.Lookup(name).String()})
	}
	table.Render()
}

func (s *session) read(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	s.log.WithField("path", path).Debug("loading variables")
	return s.ctx.LoadVars(f)
}

func (s *session) write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.ctx.SaveVars(f); err != nil {
		f.Close()
		return err
	}
	s.log.WithField("path", path).Debug("saved variables")
	return f.Close()
}

// run handles lines from r until the input ends or the user exits. The end
// of input says goodbye the same as /exit.
func (s *session) run(r io.Reader) error {
	scan := bufio.NewScanner(r)
	for !s.exit && scan.Scan() {
		s.line(scan.Text())
	}
	if err := scan.Err(); err != nil {
		return err
	}
	if !s.exit {
		s.command("/exit")
	}
	return nil
}

// complete suggests command and variable names for the last word of a line.
func (s *session) complete(line string) []string {
	k := strings.LastIndexAny(line, " ()") + 1
	head, word := line[:k], line[k:]
	if word == "" {
		return nil
	}
	var r []string
	if head == "" && strings.HasPrefix(word, "/") {
		for _, c := range commands {
			if strings.HasPrefix(c, word) {
				r = append(r, c)
			}
		}
		return r
	}
	for _, name := range s.ctx.Vars() {
		if strings.HasPrefix(name, word) {
			r = append(r, head+name)
		}
	}
	return r
}
