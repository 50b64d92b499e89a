/*
Package repl implements an interactive line reader for NPLA1: "Intp", a
small interpreter object wrapping a read-eval-print loop over package
reader and package eval, in the same shape as the teacher's own T.REPL
front end.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package repl

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/npla1/env"
	"github.com/npillmayer/npla1/eval"
	"github.com/npillmayer/npla1/forms"
	"github.com/npillmayer/npla1/reader"
	"github.com/npillmayer/npla1/term"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("npla1.repl")
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object: one ground environment, one user
// environment hanging off it, a single evaluation context and a readline
// front end.
type Intp struct {
	repl   *readline.Instance
	ground *env.Environment
	user   *env.Environment
	ctx    *eval.Context
}

// New builds an interpreter with a frozen ground environment of built-ins
// (forms.Ground) and a fresh, mutable user environment as its child.
func New(prompt string) (*Intp, error) {
	initDisplay()
	ground, err := forms.Ground()
	if err != nil {
		return nil, err
	}
	user := env.NewChild("user", ground)
	rl, err := readline.New(prompt)
	if err != nil {
		return nil, err
	}
	return &Intp{
		repl:   rl,
		ground: ground,
		user:   user,
		ctx:    eval.NewContext(user),
	}, nil
}

// loadInitFile reads and evaluates every top-level form in filename before
// the interactive loop starts. A missing or empty filename is a silent
// no-op, mirroring the teacher's own optional -init flag.
func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		tracer().Errorf("unable to open init file: %s", filename)
		return
	}
	topForms, err := reader.ReadAll(string(content))
	if err != nil {
		tracer().Errorf("error reading init file %s: %v", filename, err)
		return
	}
	for _, f := range topForms {
		if _, err := eval.Eval(intp.ctx, f); err != nil {
			tracer().Errorf("error evaluating form from %s: %v", filename, err)
		}
	}
}

// REPL runs the interactive loop until end-of-input (ctrl-D) or a quit
// command.
func (intp *Intp) REPL(initFile string) {
	pterm.Info.Println("Welcome to NPLA1")
	tracer().Infof("quit with <ctrl>D")
	intp.loadInitFile(initFile)
	defer intp.repl.Close()

	var pending strings.Builder
	depth := 0
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		trimmed := strings.TrimSpace(line)
		if depth == 0 && trimmed == "" {
			continue
		}
		if depth == 0 && (trimmed == ":q" || trimmed == ":quit") {
			break
		}
		pending.WriteString(line)
		pending.WriteString("\n")
		depth += parenDepth(line)
		if depth > 0 {
			continue
		}
		depth = 0
		quit := intp.Eval(pending.String())
		pending.Reset()
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// parenDepth counts net paren nesting added by a single input line, so the
// loop can keep reading continuation lines until a form is balanced.
func parenDepth(line string) int {
	d := 0
	inString := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inString = !inString
		case '(', '[':
			if !inString {
				d++
			}
		case ')', ']':
			if !inString {
				d--
			}
		case ';':
			if !inString {
				return d
			}
		}
	}
	return d
}

// Eval reads every top-level form out of src and evaluates it against the
// interpreter's user environment, printing each result in turn.
func (intp *Intp) Eval(src string) (quit bool) {
	terms, err := reader.ReadAll(src)
	if err != nil {
		intp.printError(err)
		return false
	}
	for _, t := range terms {
		result, err := eval.Eval(intp.ctx, t)
		intp.printResult(result, err)
	}
	return false
}

func (intp *Intp) printResult(result *term.Term, err error) {
	if err != nil {
		intp.printError(err)
		return
	}
	pterm.Info.Println(result.String())
}

func (intp *Intp) printError(err error) {
	pterm.Error.Println(err.Error())
}

// Run is the convenience entry point used by cmd/nplisp: build an
// interpreter, optionally pre-load initFile, then hand control to the
// interactive loop.
func Run(prompt, initFile string) error {
	intp, err := New(prompt)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	intp.REPL(initFile)
	return nil
}
