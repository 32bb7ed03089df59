// Package redis provides Redis-backed implementations of the persistence
// ports. Snapshots and runs are stored as JSON values with an optional TTL;
// a ZSET index keyed by save time supports listing and lazy expiry cleanup.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/mbarros/inquira/pkg/domain"
)

// noExpiry is the index score for entries without a TTL, far enough out to
// never be pruned.
const noExpiry = 4102444800 // 2100-01-01

// Store implements ports.SnapshotStore and ports.RunStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored entries.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "inquira:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) snapshotKey(name string) string { return s.prefix + "workflow:" + name }
func (s *Store) snapshotIndexKey() string       { return s.prefix + "workflow:index" }
func (s *Store) runKey(runID string) string     { return s.prefix + "run:" + runID }

// Save persists a workflow snapshot and indexes it by save time.
func (s *Store) Save(ctx context.Context, snap domain.WorkflowSnapshot) error {
	if snap.Name == "" {
		return domain.ErrNameRequired
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.snapshotKey(snap.Name), data, s.ttl)

	// Index score mirrors the entry's expiry so List can prune lazily.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = noExpiry
	}
	pipe.ZAdd(ctx, s.snapshotIndexKey(), backend.Z{Score: score, Member: snap.Name})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves a workflow snapshot by name.
func (s *Store) Load(ctx context.Context, name string) (domain.WorkflowSnapshot, error) {
	val, err := s.client.Get(ctx, s.snapshotKey(name)).Result()
	if err != nil {
		if err == backend.Nil {
			return domain.WorkflowSnapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.WorkflowSnapshot{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var snap domain.WorkflowSnapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return domain.WorkflowSnapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// LoadLast retrieves the most recently saved snapshot.
func (s *Store) LoadLast(ctx context.Context) (domain.WorkflowSnapshot, error) {
	all, err := s.List(ctx)
	if err != nil {
		return domain.WorkflowSnapshot{}, err
	}
	if len(all) == 0 {
		return domain.WorkflowSnapshot{}, domain.ErrSnapshotNotFound
	}
	return all[0], nil
}

// List returns every stored snapshot, most recently saved first. Expired
// index entries are pruned on the way.
func (s *Store) List(ctx context.Context) ([]domain.WorkflowSnapshot, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.snapshotIndexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired snapshots: %w", err)
	}

	names, err := s.client.ZRange(ctx, s.snapshotIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	var out []domain.WorkflowSnapshot
	for _, name := range names {
		snap, err := s.Load(ctx, name)
		if err != nil {
			// Value expired between prune and load.
			continue
		}
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

// Delete removes a snapshot and its index entry.
func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.snapshotKey(name))
	pipe.ZRem(ctx, s.snapshotIndexKey(), name)
	_, err := pipe.Exec(ctx)
	return err
}

// SaveRun persists the run state to Redis.
func (s *Store) SaveRun(ctx context.Context, run *domain.Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	if err := s.client.Set(ctx, s.runKey(run.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save run to redis: %w", err)
	}
	return nil
}

// LoadRun retrieves the run state from Redis.
func (s *Store) LoadRun(ctx context.Context, runID string) (*domain.Run, error) {
	val, err := s.client.Get(ctx, s.runKey(runID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get run from redis: %w", err)
	}

	var run domain.Run
	if err := json.Unmarshal([]byte(val), &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &run, nil
}

// DeleteRun removes the run state.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	return s.client.Del(ctx, s.runKey(runID)).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// RunStore adapts a Store to the ports.RunStore method set, whose names
// clash with the snapshot methods on Store itself.
type RunStore struct {
	*Store
}

// Runs returns the store's ports.RunStore view.
func (s *Store) Runs() RunStore { return RunStore{s} }

func (r RunStore) Save(ctx context.Context, run *domain.Run) error {
	return r.SaveRun(ctx, run)
}

func (r RunStore) Load(ctx context.Context, runID string) (*domain.Run, error) {
	return r.LoadRun(ctx, runID)
}

func (r RunStore) Delete(ctx context.Context, runID string) error {
	return r.DeleteRun(ctx, runID)
}
