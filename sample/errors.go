package sample

// SomeGenError is returned by the generators that fail.
type SomeGenError struct{}

func (SomeGenError) Error() string { return "some generator error" }
