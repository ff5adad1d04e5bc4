//go:build integration

package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ec-club-bing/website/pkg/database"
)

func newPostgresStore(t *testing.T) *SQLStore {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ec_website_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := database.OpenPostgres(dsn, 5, 5)
	require.NoError(t, err)
	_, err = Migrate(db, PostgresDialect)
	require.NoError(t, err)

	store := NewSQLStore(db, PostgresDialect)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPostgresStoreSeedAndPartitionQueries(t *testing.T) {
	store := newPostgresStore(t)
	client := NewClient(store, nil)
	ctx := context.Background()

	result, err := client.Seed(ctx, "events", []map[string]interface{}{
		{"title": "Kickoff", "date": "2024-01-10"},
		{"title": "Demo Day", "date": "2024-06-01"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)

	upcoming, err := client.List(ctx, "events", Query{
		Where:   []Filter{{Field: "date", Op: OpGreaterEqual, Value: "2024-03-01"}},
		OrderBy: "date",
		Limit:   2,
	})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Demo Day", upcoming[0].Data["title"])

	require.NoError(t, client.Update(ctx, "settings", "site", map[string]interface{}{"logoUrl": "https://x/logo.png"}, true))
	require.NoError(t, client.Update(ctx, "settings", "site", map[string]interface{}{"tagline": "hi"}, true))
	doc, err := client.Get(ctx, "settings", "site")
	require.NoError(t, err)
	assert.Equal(t, "https://x/logo.png", doc.Data["logoUrl"])
	assert.Equal(t, "hi", doc.Data["tagline"])
}
