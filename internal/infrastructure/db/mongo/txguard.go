package mongo

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookvault/bookstore-api/internal/api/metrics"
	"github.com/bookvault/bookstore-api/internal/core/domain"
)

// Guard wraps write operations in a unit-of-work. Every failure is
// classified into the PersistenceError taxonomy, and when the deployment
// supports multi-document transactions the operation runs inside a session
// that is aborted on any error, so partial effects never remain visible.
// Single-document writes are atomic in Mongo either way.
//
// Callers may pre-check for conflicts before invoking Execute; that check
// is advisory only. Two concurrent writers can both pass it, and the unique
// index plus this classification decide the winner.
type Guard struct {
	client *mongo.Client // nil runs ops without a session (standalone mongod)
	log    zerolog.Logger
}

// NewGuard creates a Guard. Pass a nil client when the deployment is a
// standalone mongod, which cannot host multi-document transactions.
func NewGuard(client *mongo.Client, log zerolog.Logger) *Guard {
	return &Guard{client: client, log: log}
}

// Execute runs op and returns its result unchanged on success. On failure
// the unit-of-work is rolled back and the error is classified; unknown
// failures are logged here with full context and surfaced generically.
func (g *Guard) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	err := g.run(ctx, op)
	if err == nil {
		return nil
	}

	classified := Classify(err)
	if pe, ok := domain.AsPersistence(classified); ok {
		metrics.PersistenceFailuresTotal.WithLabelValues(string(pe.Kind)).Inc()
		if pe.Kind == domain.KindUnknown {
			g.log.Error().Err(err).Msg("unclassified persistence failure")
		}
	}
	return classified
}

func (g *Guard) run(ctx context.Context, op func(ctx context.Context) error) error {
	if g.client == nil {
		return op(ctx)
	}

	sess, err := g.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	// WithTransaction aborts on any error from the callback, guaranteeing
	// rollback on every failure path.
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, op(sc)
	})
	return err
}
