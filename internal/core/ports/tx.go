package ports

import "context"

// TransactionGuard wraps a write operation so that any failure is classified
// into the domain.PersistenceError taxonomy and the enclosing unit-of-work
// is rolled back before the error is returned. Pre-checks performed by the
// caller are advisory only; the guard's classification is the authority.
type TransactionGuard interface {
	Execute(ctx context.Context, op func(ctx context.Context) error) error
}
