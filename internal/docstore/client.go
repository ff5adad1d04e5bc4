package docstore

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// SeedResult reports what a seeding pass did.
type SeedResult struct {
	Inserted int
	Failed   int
	Skipped  bool
}

type seedCall struct {
	done   chan struct{}
	result SeedResult
	err    error
}

// Client is the application's handle on the document store. Besides the Store contract it owns
// the seeding guard: one seeding pass per collection for the lifetime of the Client.
type Client struct {
	Store

	logger *zap.Logger

	mu    sync.Mutex
	seeds map[string]*seedCall
}

// NewClient wraps store. A nil logger discards output.
func NewClient(store Store, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{Store: store, logger: logger, seeds: make(map[string]*seedCall)}
}

// Seed inserts records into collection when it is empty. Concurrent and repeated callers share the
// outcome of the first call; only that call touches the store. A failed insert is logged and the
// remaining records are still attempted; nothing is rolled back.
func (c *Client) Seed(ctx context.Context, collection string, records []map[string]interface{}) (SeedResult, error) {
	c.mu.Lock()
	call, ok := c.seeds[collection]
	if !ok {
		call = &seedCall{done: make(chan struct{})}
		c.seeds[collection] = call
		c.mu.Unlock()

		// the pass outlives the request that happened to start it
		call.result, call.err = c.seed(context.WithoutCancel(ctx), collection, records)
		close(call.done)
		return call.result, call.err
	}
	c.mu.Unlock()

	select {
	case <-call.done:
		return call.result, call.err
	case <-ctx.Done():
		return SeedResult{}, ctx.Err()
	}
}

// Seeded reports whether a seeding pass for collection has completed.
func (c *Client) Seeded(collection string) bool {
	c.mu.Lock()
	call, ok := c.seeds[collection]
	c.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case <-call.done:
		return true
	default:
		return false
	}
}

func (c *Client) seed(ctx context.Context, collection string, records []map[string]interface{}) (SeedResult, error) {
	existing, err := c.List(ctx, collection, Query{Limit: 1})
	if err != nil {
		c.logger.Error("seed check failed", zap.String("collection", collection), zap.Error(err))
		return SeedResult{}, fmt.Errorf("seed %s: %w", collection, err)
	}
	if len(existing) > 0 {
		c.logger.Debug("collection already populated, skipping seed", zap.String("collection", collection))
		return SeedResult{Skipped: true}, nil
	}

	var result SeedResult
	for i, record := range records {
		if _, err := c.Create(ctx, collection, record); err != nil {
			result.Failed++
			c.logger.Error("seed insert failed",
				zap.String("collection", collection),
				zap.Int("record", i),
				zap.Error(err),
			)
			continue
		}
		result.Inserted++
	}
	c.logger.Info("collection seeded",
		zap.String("collection", collection),
		zap.Int("inserted", result.Inserted),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// Ping checks that the store answers a trivial read.
func (c *Client) Ping(ctx context.Context, collection string) error {
	_, err := c.List(ctx, collection, Query{Limit: 1})
	return err
}
