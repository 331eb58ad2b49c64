// Package mongostore provides a MongoDB backed scenario store.
//
// Scenarios live in a single collection, keyed by scenario id as the
// document _id. Documents round-trip through the bson tags declared on the
// scenario types.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/andysmith26/groupwheel-sub002/types"
)

// DefaultCollection is the collection name used when none is configured.
const DefaultCollection = "scenarios"

// Store persists scenarios in a MongoDB collection.
type Store struct {
	coll *mongo.Collection
}

// Compile-time interface check.
var _ types.Store = (*Store)(nil)

// New creates a scenario store on the given database.
//
// Parameters:
//   - db: MongoDB database handle
//   - collection: collection name; empty selects DefaultCollection
//
// Returns:
//   - *Store: the MongoDB-backed store
func New(db *mongo.Database, collection string) *Store {
	if collection == "" {
		collection = DefaultCollection
	}

	return &Store{coll: db.Collection(collection)}
}

// Get loads a scenario by id.
//
// Returns:
//   - *types.Scenario: the stored scenario
//   - error: types.ErrNotFound when no scenario has this id
func (s *Store) Get(ctx context.Context, id string) (*types.Scenario, error) {
	var scn types.Scenario
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&scn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("scenario %s: %w", id, types.ErrNotFound)
		}

		return nil, fmt.Errorf("get scenario %s: %w", id, err)
	}

	return &scn, nil
}

// Save creates or overwrites a scenario.
func (s *Store) Save(ctx context.Context, scn *types.Scenario) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": scn.ID}, scn, opts); err != nil {
		return fmt.Errorf("save scenario %s: %w", scn.ID, err)
	}

	return nil
}

// Update replaces an existing scenario.
//
// Returns:
//   - error: types.ErrNotFound when no scenario has this id
func (s *Store) Update(ctx context.Context, scn *types.Scenario) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": scn.ID}, scn)
	if err != nil {
		return fmt.Errorf("update scenario %s: %w", scn.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("scenario %s: %w", scn.ID, types.ErrNotFound)
	}

	return nil
}
