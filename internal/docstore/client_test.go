package docstore

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []map[string]interface{} {
	return []map[string]interface{}{
		{"title": "one", "date": "2024-01-01"},
		{"title": "two", "date": "2024-02-01"},
		{"title": "three", "date": "2024-03-01"},
	}
}

// countingStore counts List calls and can slow down or fail selected inserts.
type countingStore struct {
	*MemoryStore
	lists     int32
	creates   int32
	delay     time.Duration
	failOnNth int32
}

func (s *countingStore) List(ctx context.Context, collection string, q Query) ([]Document, error) {
	atomic.AddInt32(&s.lists, 1)
	time.Sleep(s.delay)
	return s.MemoryStore.List(ctx, collection, q)
}

func (s *countingStore) Create(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	n := atomic.AddInt32(&s.creates, 1)
	if s.failOnNth > 0 && n == s.failOnNth {
		return "", unavailable("create", errors.New("boom"))
	}
	return s.MemoryStore.Create(ctx, collection, data)
}

func TestSeedIsIdempotent(t *testing.T) {
	mem := NewMemoryStore()
	client := NewClient(mem, nil)
	ctx := context.Background()

	first, err := client.Seed(ctx, "articles", sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, 3, first.Inserted)
	assert.Equal(t, 3, mem.Len("articles"))

	second, err := client.Seed(ctx, "articles", sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 3, mem.Len("articles"))
	assert.True(t, client.Seeded("articles"))
}

func TestSeedSkipsPopulatedCollection(t *testing.T) {
	mem := NewMemoryStore()
	_, err := mem.Create(context.Background(), "events", map[string]interface{}{"title": "existing"})
	require.NoError(t, err)

	result, err := NewClient(mem, nil).Seed(context.Background(), "events", sampleRecords())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, 1, mem.Len("events"))
}

func TestSeedConcurrentCallersShareOnePass(t *testing.T) {
	store := &countingStore{MemoryStore: NewMemoryStore(), delay: 20 * time.Millisecond}
	client := NewClient(store, nil)

	const callers = 16
	var wg sync.WaitGroup
	results := make([]SeedResult, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = client.Seed(context.Background(), "articles", sampleRecords())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 3, results[i].Inserted)
	}
	assert.Equal(t, 3, store.Len("articles"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&store.lists))
}

func TestSeedCollectionsAreIndependent(t *testing.T) {
	mem := NewMemoryStore()
	client := NewClient(mem, nil)

	_, err := client.Seed(context.Background(), "articles", sampleRecords())
	require.NoError(t, err)
	assert.False(t, client.Seeded("events"))

	_, err = client.Seed(context.Background(), "events", sampleRecords()[:2])
	require.NoError(t, err)
	assert.Equal(t, 2, mem.Len("events"))
}

func TestSeedToleratesPartialFailure(t *testing.T) {
	store := &countingStore{MemoryStore: NewMemoryStore(), failOnNth: 2}
	client := NewClient(store, nil)

	result, err := client.Seed(context.Background(), "articles", sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 2, store.Len("articles"))

	again, err := NewClient(store, nil).Seed(context.Background(), "articles", sampleRecords())
	require.NoError(t, err)
	assert.True(t, again.Skipped)
	assert.Equal(t, 2, store.Len("articles"))
}

func TestSeedCheckFailureIsMemoized(t *testing.T) {
	mem := NewMemoryStore()
	mem.FailWith(errors.New("offline"))
	client := NewClient(mem, nil)

	_, err := client.Seed(context.Background(), "articles", sampleRecords())
	assert.ErrorIs(t, err, ErrUnavailable)

	mem.FailWith(nil)
	_, err = client.Seed(context.Background(), "articles", sampleRecords())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 0, mem.Len("articles"))
}

func TestSeedWaiterHonoursContext(t *testing.T) {
	store := &countingStore{MemoryStore: NewMemoryStore(), delay: 200 * time.Millisecond}
	client := NewClient(store, nil)

	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = client.Seed(context.Background(), "articles", sampleRecords())
	}()
	<-started
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := client.Seed(ctx, "articles", sampleRecords())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type recordingObserver struct {
	mu     sync.Mutex
	labels []string
}

func (o *recordingObserver) ObserveDBQuery(label string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.labels = append(o.labels, label)
}

func TestInstrumentReportsOperations(t *testing.T) {
	observer := &recordingObserver{}
	store := Instrument(NewMemoryStore(), observer)
	ctx := context.Background()

	id, err := store.Create(ctx, "articles", map[string]interface{}{"title": "x"})
	require.NoError(t, err)
	_, err = store.Get(ctx, "articles", id)
	require.NoError(t, err)
	_, err = store.List(ctx, "articles", Query{})
	require.NoError(t, err)
	require.NoError(t, store.Update(ctx, "articles", id, map[string]interface{}{"title": "y"}, true))
	require.NoError(t, store.Delete(ctx, "articles", id))

	assert.Equal(t, []string{"articles.create", "articles.get", "articles.list", "articles.update", "articles.delete"}, observer.labels)
}
