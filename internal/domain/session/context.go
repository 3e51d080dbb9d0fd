package session

import "context"

type ctxKey struct{}

// WithSession stores s on ctx. Only the HTTP layer reads it back; services
// receive the session as an explicit argument.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}
