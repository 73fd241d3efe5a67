package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kilianp07/partminder/core/errs"
)

type line struct {
	text string
	err  error
}

// ErrClosed is returned by ReadLine once the Prompter is closed.
var ErrClosed = errors.New("prompter closed")

// Prompter reads answers line by line from in and writes prompts and
// rejection messages to out. Lines are read ahead by a goroutine so that a
// cancelled context interrupts a pending answer. Close releases that
// goroutine; a read already blocked on in still completes first.
type Prompter struct {
	in    io.Reader
	out   io.Writer
	sel   MessageSelector
	lines chan line

	done      chan struct{}
	exited    chan struct{}
	closeOnce sync.Once
}

// New returns a Prompter. A nil selector uses the default escalating
// messages with a random advanced pool.
func New(in io.Reader, out io.Writer, sel MessageSelector) *Prompter {
	if sel == nil {
		sel = Escalating(DefaultPrimary, DefaultAdvanced, nil)
	}
	return &Prompter{in: in, out: out, sel: sel, done: make(chan struct{})}
}

// Close stops the reader goroutine. It is safe to call more than once.
func (p *Prompter) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

// Printf writes to the prompt output. Write errors are ignored as the
// terminal is the only place they could be reported.
func (p *Prompter) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) start() {
	if p.lines != nil {
		return
	}
	p.lines = make(chan line)
	p.exited = make(chan struct{})
	go func() {
		defer close(p.exited)
		send := func(l line) bool {
			select {
			case p.lines <- l:
				return true
			case <-p.done:
				return false
			}
		}
		sc := bufio.NewScanner(p.in)
		for sc.Scan() {
			if !send(line{text: strings.TrimSuffix(sc.Text(), "\r")}) {
				return
			}
		}
		err := sc.Err()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		if send(line{err: err}) {
			close(p.lines)
		}
	}()
}

// ReadLine prints label and returns the next input line without the line
// terminator. It returns ctx.Err() if ctx ends first and ErrClosed after
// Close.
func (p *Prompter) ReadLine(ctx context.Context, label string) (string, error) {
	select {
	case <-p.done:
		return "", ErrClosed
	default:
	}
	p.start()
	p.Printf("%s", label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.done:
		return "", ErrClosed
	case l, ok := <-p.lines:
		if !ok {
			return "", io.ErrUnexpectedEOF
		}
		return l.text, l.err
	}
}

// Ask keeps prompting with label until accept takes the answer. A rejection
// carrying a user message prints that message; any other recoverable
// rejection prints the selector message for the current retry count and
// escalates. Unrecoverable errors from accept are returned as is.
func Ask[T any](ctx context.Context, p *Prompter, label string, accept func(string) (T, error)) (T, error) {
	var zero T
	tries := 0
	for {
		s, err := p.ReadLine(ctx, label)
		if err != nil {
			return zero, fmt.Errorf("read answer: %w", err)
		}
		v, err := accept(s)
		if err == nil {
			return v, nil
		}
		if !errs.Recoverable(err) {
			return zero, err
		}
		if msg, ok := errs.UserMessage(err); ok {
			p.Printf("\n%s\n", msg)
			continue
		}
		p.Printf("%s\n", p.sel(tries))
		tries++
	}
}
