package client

import "context"

// Outcome represents a UI facing call state: either data or an error message
type Outcome[T any] struct {
	Data  *Result[T]
	Error string
	Err   error
}

// OK returns true for 2xx results
func (o *Outcome[T]) OK() bool {
	return o.Data != nil && o.Data.OK
}

// Trigger runs fn and converts its error into a displayable message
func Trigger[T any](ctx context.Context, fn func(ctx context.Context) (*Result[T], error)) *Outcome[T] {
	ret := &Outcome[T]{}
	data, err := fn(ctx)
	if err != nil {
		ret.Err = err
		ret.Error = Message(err)
		return ret
	}
	ret.Data = data
	return ret
}
