// Package producer implements resumable sequence producers: bodies that run
// until a pause point, hand one value to the caller, and later continue from
// exactly where they stopped.
//
// A body is a Machine. Rather than suspending a call stack, a Machine is
// driven by an explicit program counter: each call to Step runs one segment
// of the body and reports where to continue. Anything the body needs to
// remember across pauses lives in the Machine value itself.
package producer

import (
	"errors"
	"fmt"
	"iter"
	"sync"
)

var (
	// ErrExhausted is returned when resuming a producer that has completed.
	ErrExhausted = errors.New("producer: sequence exhausted")
	// ErrAlreadyRunning is returned when resuming a producer whose body is
	// currently executing, either from another goroutine or from the body itself.
	ErrAlreadyRunning = errors.New("producer: already running")
	// ErrProgramCounter is returned by machines asked to run a step they don't have.
	ErrProgramCounter = errors.New("producer: invalid program counter")
)

// State is the lifecycle state of a Producer.
type State int

const (
	Created State = iota
	Suspended
	Running
	Completed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Suspended:
		return "suspended"
	case Running:
		return "running"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Transition reports the outcome of a single Step.
type Transition[T any] struct {
	// Next is the program counter to resume from.
	Next  int
	Value T
	// Done is set when the body ended without reaching another pause point.
	Done bool
}

// Suspend pauses the body, handing v to the caller. The next Step is called
// with next.
func Suspend[T any](next int, v T) Transition[T] {
	return Transition[T]{Next: next, Value: v}
}

// End finishes the body.
func End[T any]() Transition[T] {
	return Transition[T]{Done: true}
}

// Unreachable is what a Machine returns for a program counter it never
// hands out.
func Unreachable[T any](pc int) (Transition[T], error) {
	return Transition[T]{}, fmt.Errorf("%w: %d", ErrProgramCounter, pc)
}

// Machine is the body of a Producer.
type Machine[T any] interface {
	// Step runs the body from program counter pc up to the next pause point
	// or the end of the body. The first call gets pc 0.
	Step(pc int) (Transition[T], error)
}

// Producer drives a Machine one pause point at a time.
//
// A Producer also implements the gengen.Generator interface, so generated
// generator functions return it directly.
type Producer[T any] struct {
	mu      sync.Mutex
	state   State
	pc      int
	machine Machine[T]

	// used by Next, Value and Error, guarded by mu
	value T
	err   error
}

// New creates a producer for m. Nothing in m runs until the first Resume.
func New[T any](m Machine[T]) *Producer[T] {
	return &Producer[T]{machine: m}
}

// State returns the current lifecycle state.
func (p *Producer[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Resume runs the body up to its next pause point and returns the paused
// value with ok set. When the body ends instead, Resume returns ok == false
// and a nil error, once; every later call fails with ErrExhausted.
//
// An error returned by the body completes the producer.
func (p *Producer[T]) Resume() (value T, ok bool, err error) {
	p.mu.Lock()
	switch p.state {
	case Running:
		p.mu.Unlock()
		return value, false, ErrAlreadyRunning
	case Completed:
		p.mu.Unlock()
		return value, false, ErrExhausted
	}
	p.state = Running
	pc := p.pc
	p.mu.Unlock()

	finished := false
	defer func() {
		if !finished {
			// the body panicked
			p.mu.Lock()
			p.state = Completed
			p.mu.Unlock()
		}
	}()

	t, err := p.machine.Step(pc)
	finished = true

	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case err != nil:
		p.state = Completed
		return value, false, fmt.Errorf("producer: step %d: %w", pc, err)
	case t.Done:
		p.state = Completed
		return value, false, nil
	}

	p.pc = t.Next
	p.state = Suspended
	return t.Value, true, nil
}

// Close abandons the producer without running the rest of its body.
func (p *Producer[T]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Running {
		return ErrAlreadyRunning
	}
	p.state = Completed
	return nil
}

// Next advances to the next value and reports whether there is one.
func (p *Producer[T]) Next() bool {
	value, ok, err := p.Resume()
	if errors.Is(err, ErrExhausted) {
		// keep whatever ended the sequence
		return false
	}
	p.mu.Lock()
	p.value = value
	p.err = err
	p.mu.Unlock()
	return ok
}

// Value returns the value produced by the last successful Next.
func (p *Producer[T]) Value() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Error returns the error that ended the sequence, if any.
func (p *Producer[T]) Error() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// All returns an iterator over the remaining values. Breaking out of the
// loop leaves the producer suspended. An error from the body stops the
// iteration and is available from Error.
func (p *Producer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for p.Next() {
			if !yield(p.Value()) {
				return
			}
		}
	}
}
