package mongo

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

// SessionTransactor runs a unit of work inside a MongoDB session
// transaction. Standalone deployments have no transaction support; in that
// case the work runs plainly and the unique indexes remain the only guard
// against concurrent duplicate registrations.
type SessionTransactor struct {
	client *mongo.Client
	log    zerolog.Logger
}

func NewSessionTransactor(client *mongo.Client, log zerolog.Logger) *SessionTransactor {
	return &SessionTransactor{client: client, log: log}
}

func (t *SessionTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		t.log.Warn().Err(err).Msg("mongo session unavailable, running without transaction")
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && transactionsUnsupported(err) {
		t.log.Warn().Err(err).Msg("mongo transactions unsupported, falling back to unique-index enforcement")
		return fn(ctx)
	}
	return err
}

// transactionsUnsupported detects the standalone-mongod rejection so the
// fallback only fires for deployment capability, never for work errors.
func transactionsUnsupported(err error) bool {
	return strings.Contains(err.Error(), "Transaction numbers are only allowed")
}
