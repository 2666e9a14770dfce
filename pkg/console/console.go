// Package console evaluates diagnostic expressions against a history
// store. Each call runs in a fresh zygomys sandbox with the memento
// builtins installed.
package console

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/voxmemento/pkg/history"
	zygo "github.com/glycerine/zygomys/zygo"
)

// DefaultTimeout bounds a single evaluation when no timeout is configured.
const DefaultTimeout = 2 * time.Second

// EvalError is a parse or runtime error in console source.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Console runs expressions against one store. The store must not be
// mutated while Eval is running; builtins only read from it.
type Console struct {
	store   *history.Store
	timeout time.Duration

	mu         sync.Mutex
	generation uint64
}

// New returns a console over s. A non-positive timeout selects
// DefaultTimeout.
func New(s *history.Store, timeout time.Duration) *Console {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Console{store: s, timeout: timeout}
}

// Eval evaluates source and returns the printed value of the last
// expression.
//
// Parse and runtime failures come back as EvalErrors with a nil error.
// Timeouts, panics and superseded evaluations are reported through the
// error return.
func (c *Console) Eval(source string) (string, []EvalError, error) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("console: panic during evaluation: %v", r)}
			}
		}()
		out, evalErrs, err := c.eval(source)
		ch <- evalResult{value: out, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, c.timeout, &c.mu, &c.generation)
}

func (c *Console) eval(source string) (string, []EvalError, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, c.store)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return "", parseZygomysError(err), nil
	}
	res, err := env.Run()
	if err != nil {
		return "", parseZygomysError(err), nil
	}
	if str, ok := res.(*zygo.SexpStr); ok {
		return str.S, nil, nil
	}
	return res.SexpString(nil), nil, nil
}

var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
