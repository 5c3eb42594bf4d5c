package logs

import (
	"context"
	"errors"
	"fmt"
)

// Span names one unit of work, a single file tokenization for instance. It
// travels in the context and is attached to every record by Handler.
type Span string

type spanKeyType struct{}

var SpanKey spanKeyType

// WrapSpan annotates err with the span found in ctx, if any.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	v := ctx.Value(SpanKey)
	if v == nil {
		return err
	}
	return errors.Join(err, fmt.Errorf("span: %s", v.(Span)))
}
