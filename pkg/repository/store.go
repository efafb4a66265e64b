package repository

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

type MongoStore struct {
	client *mongo.Client
}

func NewMongoStore(client *mongo.Client) *MongoStore {
	return &MongoStore{client: client}
}

// WithTransaction wraps fn in a majority-write-concern transaction. On
// deployments without replica sets (where mongo rejects transactions) it
// reruns fn plainly; the rejection happens before any write is applied, so
// the rerun starts from a clean slate and the services' verify-and-
// compensate logic covers consistency in that mode.
func (s *MongoStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	wc := writeconcern.New(writeconcern.WMajority())
	txnOptions := options.Transaction().SetWriteConcern(wc)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, txnOptions)

	if err != nil && transactionsUnsupported(err) {
		return fn(ctx)
	}
	return err
}

func transactionsUnsupported(err error) bool {
	if ce, ok := err.(mongo.CommandError); ok && ce.Code == 20 { // IllegalOperation
		return true
	}
	return strings.Contains(err.Error(), "Transaction numbers are only allowed")
}
