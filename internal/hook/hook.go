package hook

import "context"

// Hook is one link in a collection lifecycle chain. It receives the current
// value and may return a replacement; returning nil keeps the value for the
// next hook in the chain.
type Hook[T any] func(ctx context.Context, v *T) (*T, error)

// Run invokes hooks strictly in order, one at a time. The first error aborts
// the rest of the chain and is returned to the caller as-is.
func Run[T any](ctx context.Context, hooks []Hook[T], v *T) (*T, error) {
	cur := v
	for _, h := range hooks {
		out, err := h(ctx, cur)
		if err != nil {
			return nil, err
		}
		if out != nil {
			cur = out
		}
	}
	return cur, nil
}
