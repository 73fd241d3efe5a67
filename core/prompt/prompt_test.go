package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/partminder/core/errs"
	"github.com/kilianp07/partminder/core/validate"
)

func TestAskAcceptsFirstValid(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("abc\n-1\n42\n"), &out, Escalating([]string{"m0", "m1"}, []string{"adv"}, Cycle()))

	n, err := Ask(context.Background(), p, "mileage: ", validate.NonNegInt)
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.Equal(t, "mileage: m0\nmileage: m1\nmileage: ", out.String())
}

func TestAskUserMessageDoesNotEscalate(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("x\n60000\ny\n100\n"), &out, Escalating([]string{"m0", "m1"}, nil, nil))

	n, err := Ask(context.Background(), p, "> ", func(s string) (int, error) {
		return validate.Mileage(s, 50000)
	})
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	got := out.String()
	assert.Contains(t, got, "more than the total kilometers")
	assert.Equal(t, 1, strings.Count(got, "m0"))
	assert.Equal(t, 1, strings.Count(got, "m1"))
}

func TestAskEOF(t *testing.T) {
	p := New(strings.NewReader("bad\n"), io.Discard, nil)
	_, err := Ask(context.Background(), p, "> ", validate.NonNegInt)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestAskFatalError(t *testing.T) {
	boom := errors.New("boom")
	p := New(strings.NewReader("x\n"), io.Discard, nil)
	_, err := Ask(context.Background(), p, "> ", func(string) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}

func TestAskContextCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer func() { _ = w.Close() }()
	p := New(r, io.Discard, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := Ask(ctx, p, "> ", validate.NonNegInt)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAskCRLF(t *testing.T) {
	p := New(strings.NewReader("Oil\r\n"), io.Discard, nil)
	s, err := Ask(context.Background(), p, "> ", validate.Name)
	require.NoError(t, err)
	assert.Equal(t, "Oil", s)
}

func TestEscalating(t *testing.T) {
	sel := Escalating([]string{"a", "b"}, []string{"x", "y", "z"}, Cycle())
	got := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		got = append(got, sel(i))
	}
	assert.Equal(t, []string{"a", "b", "x", "y", "z", "x", "y"}, got)
}

func TestEscalatingRandomStaysInPool(t *testing.T) {
	sel := Escalating(DefaultPrimary, DefaultAdvanced, nil)
	for i := 0; i < len(DefaultPrimary); i++ {
		assert.Equal(t, DefaultPrimary[i], sel(i))
	}
	for i := 0; i < 50; i++ {
		assert.Contains(t, DefaultAdvanced, sel(len(DefaultPrimary)+i))
	}
}

func TestEscalatingEmptyPools(t *testing.T) {
	assert.Equal(t, "b", Escalating([]string{"a", "b"}, nil, nil)(5))
	assert.Equal(t, DefaultPrimary[0], Escalating(nil, nil, nil)(0))
}

func TestRecoverableRejections(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("7\n"), &out, Escalating([]string{"m0"}, nil, nil))
	calls := 0
	v, err := Ask(context.Background(), p, "", func(s string) (string, error) {
		calls++
		return s, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "7", v)
	assert.Equal(t, 1, calls)
	assert.True(t, errs.Recoverable(errs.ErrLogic))
}

func TestCloseReleasesReader(t *testing.T) {
	p := New(strings.NewReader("one\ntwo\nthree\n"), io.Discard, nil)
	got, err := p.ReadLine(context.Background(), "> ")
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	p.Close()
	p.Close()
	select {
	case <-p.exited:
	case <-time.After(time.Second):
		t.Fatal("reader goroutine still running after Close")
	}
	_, err = p.ReadLine(context.Background(), "> ")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCloseAfterCancelledRead(t *testing.T) {
	r, w := io.Pipe()
	p := New(r, io.Discard, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.ReadLine(ctx, "> ")
	assert.ErrorIs(t, err, context.Canceled)

	p.Close()
	go func() { _, _ = w.Write([]byte("late\n")) }()
	select {
	case <-p.exited:
	case <-time.After(time.Second):
		t.Fatal("reader goroutine blocked after Close")
	}
	_ = w.Close()
}

func TestCloseBeforeRead(t *testing.T) {
	p := New(strings.NewReader("x\n"), io.Discard, nil)
	p.Close()
	_, err := Ask(context.Background(), p, "> ", validate.NonNegInt)
	assert.ErrorIs(t, err, ErrClosed)
}
