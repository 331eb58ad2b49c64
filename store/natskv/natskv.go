// Package natskv provides a NATS JetStream KeyValue backed scenario store.
//
// Scenarios are stored as JSON payloads keyed by scenario id in a single KV
// bucket. The bucket is created on demand with retry logic so that multiple
// processes opening the same bucket concurrently converge instead of racing.
package natskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/andysmith26/groupwheel-sub002/types"
)

// DefaultBucket is the KV bucket name used when none is configured.
const DefaultBucket = "groupwheel-scenarios"

// ensureBucketRetries bounds bucket creation attempts.
const ensureBucketRetries = 3

// Store persists scenarios in a NATS JetStream KV bucket.
type Store struct {
	kv jetstream.KeyValue
}

// Compile-time interface check.
var _ types.Store = (*Store)(nil)

// New creates a scenario store backed by a JetStream KV bucket, creating
// the bucket when it does not exist yet.
//
// Parameters:
//   - ctx: context for bucket creation
//   - js: JetStream context
//   - bucket: KV bucket name; empty selects DefaultBucket
//
// Returns:
//   - *Store: the KV-backed store
//   - error: non-nil when the bucket cannot be created or opened
func New(ctx context.Context, js jetstream.JetStream, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}

	kv, err := ensureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "groupwheel scenario snapshots",
		History:     1,
	})
	if err != nil {
		return nil, err
	}

	return &Store{kv: kv}, nil
}

// NewWithKV wraps an existing KV bucket, for callers that manage bucket
// lifecycle themselves.
func NewWithKV(kv jetstream.KeyValue) *Store {
	return &Store{kv: kv}
}

// Get loads a scenario by id.
//
// Returns:
//   - *types.Scenario: the stored scenario
//   - error: types.ErrNotFound when no scenario has this id
func (s *Store) Get(ctx context.Context, id string) (*types.Scenario, error) {
	entry, err := s.kv.Get(ctx, id)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, fmt.Errorf("scenario %s: %w", id, types.ErrNotFound)
		}

		return nil, fmt.Errorf("get scenario %s: %w", id, err)
	}

	var scn types.Scenario
	if err := json.Unmarshal(entry.Value(), &scn); err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", id, err)
	}

	return &scn, nil
}

// Save creates or overwrites a scenario.
func (s *Store) Save(ctx context.Context, scn *types.Scenario) error {
	data, err := json.Marshal(scn)
	if err != nil {
		return fmt.Errorf("encode scenario %s: %w", scn.ID, err)
	}

	if _, err := s.kv.Put(ctx, scn.ID, data); err != nil {
		return fmt.Errorf("save scenario %s: %w", scn.ID, err)
	}

	return nil
}

// Update replaces an existing scenario.
//
// Returns:
//   - error: types.ErrNotFound when no scenario has this id
func (s *Store) Update(ctx context.Context, scn *types.Scenario) error {
	// KV Put upserts, so existence is checked first to preserve the
	// create/replace distinction callers rely on.
	if _, err := s.kv.Get(ctx, scn.ID); err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return fmt.Errorf("scenario %s: %w", scn.ID, types.ErrNotFound)
		}

		return fmt.Errorf("update scenario %s: %w", scn.ID, err)
	}

	return s.Save(ctx, scn)
}

// ensureBucket creates or opens a KV bucket with retry logic.
//
// Concurrent creators race on CreateKeyValue; the loser sees ErrBucketExists
// and opens the existing bucket instead. Transient failures retry with
// exponential backoff (10ms, 20ms, 40ms).
func ensureBucket(
	ctx context.Context,
	js jetstream.JetStream,
	config jetstream.KeyValueConfig,
) (jetstream.KeyValue, error) {
	var lastErr error

	for attempt := 0; attempt < ensureBucketRetries; attempt++ {
		kv, err := js.CreateKeyValue(ctx, config)
		if err == nil {
			return kv, nil
		}

		if errors.Is(err, jetstream.ErrBucketExists) {
			kv, err := js.KeyValue(ctx, config.Bucket)
			if err == nil {
				return kv, nil
			}
			lastErr = fmt.Errorf("bucket exists but failed to open: %w", err)
		} else {
			lastErr = err
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("context cancelled during KV bucket creation: %w", ctx.Err())
		}

		if attempt < ensureBucketRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * 10 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("failed to create/open KV bucket %s after %d attempts: %w",
		config.Bucket, ensureBucketRetries, lastErr)
}
