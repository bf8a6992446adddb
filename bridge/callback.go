package bridge

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Token is the opaque correlation handle the engine mints per outstanding
// request. The bridge never interprets it; it is echoed back on exactly
// one completion. A token must not be reused until that completion fired.
type Token uint64

// Callback pairs a token with the single completion owed to it. Announce
// delivers at most once: every later call is dropped and logged, so a late
// completion after the caller gave up still consumes the token without
// reaching anyone twice.
type Callback[T any] struct {
	token  Token
	fn     func(Token, T, error)
	fired  atomic.Bool
	logger *zap.Logger
}

// NewCallback binds token to fn. fn runs on whatever goroutine announces;
// it must not assume thread affinity.
func NewCallback[T any](token Token, logger *zap.Logger, fn func(Token, T, error)) *Callback[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Callback[T]{token: token, fn: fn, logger: logger}
}

// Announce delivers the completion. Only the first call lands; it returns
// whether this call was the one that consumed the token.
func (c *Callback[T]) Announce(value T, err error) bool {
	if c.fired.Swap(true) {
		c.logger.Error("completion dropped: token already announced",
			zap.Uint64("token", uint64(c.token)))
		return false
	}
	c.fn(c.token, value, err)
	return true
}

// Token returns the bound correlation handle.
func (c *Callback[T]) Token() Token { return c.token }
