// Package engine provides the Lisp evaluation engine for construction
// scripts. It wraps zygomys in a sandboxed environment and produces a
// Drawing from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/draft/pkg/drawing"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in user code or a blocking
// validation finding. Validation errors carry the offending entity.
type EvalError struct {
	Line     int
	Col      int
	Message  string
	EntityID drawing.EntityID
}

func (e EvalError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	case !e.EntityID.IsZero():
		return fmt.Sprintf("entity %s: %s", e.EntityID.Short(), e.Message)
	}
	return e.Message
}

// EvalWarning represents a non-fatal warning about the produced drawing.
type EvalWarning struct {
	Message  string
	EntityID drawing.EntityID
}

// EvalResult bundles the full output of an evaluation for front ends.
type EvalResult struct {
	Drawing  *drawing.Drawing
	Errors   []EvalError
	Warnings []EvalWarning
}

// Engine wraps the zygomys interpreter.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	timeout    time.Duration
}

// NewEngine creates a new Engine that gives each evaluation EvalTimeout.
func NewEngine() *Engine {
	return &Engine{timeout: EvalTimeout}
}

// Evaluate takes Lisp source code and produces a new Drawing.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns drawing + nil errors + nil error
//   - On parse/eval failure: returns nil drawing + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*drawing.Drawing, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("engine: panic during evaluation: %v", r)}
			}
		}()

		d, evalErrs, err := e.evaluate(source)
		ch <- evalResult{drawing: d, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, e.timeout, gen, &e.mu, &e.generation)
}

// Run evaluates source and attaches the drawing's validation findings.
// Blocking validation errors are reported as EvalErrors tagged with their
// entity but without line information; advisory findings become warnings.
func (e *Engine) Run(source string) (EvalResult, error) {
	d, evalErrs, err := e.Evaluate(source)
	if err != nil {
		return EvalResult{}, err
	}
	res := EvalResult{Drawing: d, Errors: evalErrs}
	if d == nil {
		return res, nil
	}

	v := drawing.ValidateAll(d)
	for _, ve := range v.Errors {
		res.Errors = append(res.Errors, EvalError{Message: ve.Message, EntityID: ve.EntityID})
	}
	for _, w := range v.Warnings {
		res.Warnings = append(res.Warnings, EvalWarning{Message: w.Message, EntityID: w.EntityID})
	}
	return res, nil
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*drawing.Drawing, []EvalError, error) {
	// Empty source is a valid program that produces an empty drawing.
	if strings.TrimSpace(source) == "" {
		return drawing.New(), nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	d := drawing.New()
	registerBuiltins(env, d)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	return d, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
