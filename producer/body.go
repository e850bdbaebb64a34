package producer

// Instruction is one step of a Body: either an effect or a pause point.
type Instruction[T any] struct {
	effect func() error
	value  T
	pause  bool
}

// Effect runs fn when the body reaches it. An error from fn ends the body.
func Effect[T any](fn func() error) Instruction[T] {
	return Instruction[T]{effect: fn}
}

// Yield pauses the body and hands v to the caller.
func Yield[T any](v T) Instruction[T] {
	return Instruction[T]{value: v, pause: true}
}

// Body is a linear program of effects and pause points. The program counter
// is the index of the next instruction to execute.
type Body[T any] []Instruction[T]

// Step implements Machine.
func (b Body[T]) Step(pc int) (Transition[T], error) {
	if pc < 0 || pc > len(b) {
		return Unreachable[T](pc)
	}

	for i := pc; i < len(b); i++ {
		in := b[i]
		if in.pause {
			return Suspend(i+1, in.value), nil
		}
		if in.effect == nil {
			continue
		}
		if err := in.effect(); err != nil {
			return Transition[T]{}, err
		}
	}

	return End[T](), nil
}
