package docstore

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLStoreMock(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { _ = sqlxDB.Close() })
	return NewSQLStore(sqlxDB, PostgresDialect), mock
}

func TestSQLStoreGet(t *testing.T) {
	store, mock := newSQLStoreMock(t)
	rows := sqlmock.NewRows([]string{"id", "data"}).
		AddRow("a1", []byte(`{"title":"Pitch Night","date":"2024-03-01"}`))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, data FROM documents WHERE collection = $1 AND id = $2`)).
		WithArgs("articles", "a1").
		WillReturnRows(rows)

	doc, err := store.Get(context.Background(), "articles", "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", doc.ID)
	assert.Equal(t, "Pitch Night", doc.Data["title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreGetNotFound(t *testing.T) {
	store, mock := newSQLStoreMock(t)
	mock.ExpectQuery("SELECT id, data FROM documents").
		WithArgs("articles", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "data"}))

	_, err := store.Get(context.Background(), "articles", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStoreListBuildsQuery(t *testing.T) {
	store, mock := newSQLStoreMock(t)
	rows := sqlmock.NewRows([]string{"id", "data"}).
		AddRow("e1", []byte(`{"date":"2024-06-01"}`)).
		AddRow("e2", []byte(`{"date":"2024-07-01"}`))
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, data FROM documents WHERE collection = $1 AND data->>'date' >= $2 AND data->'date' IS NOT NULL ORDER BY data->'date' ASC, seq ASC LIMIT $3`)).
		WithArgs("events", "2024-03-01", 2).
		WillReturnRows(rows)

	docs, err := store.List(context.Background(), "events", Query{
		Where:   []Filter{{Field: "date", Op: OpGreaterEqual, Value: "2024-03-01"}},
		OrderBy: "date",
		Limit:   2,
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "e1", docs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreListDescending(t *testing.T) {
	store, mock := newSQLStoreMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY data->'date' DESC, seq ASC`)).
		WithArgs("articles").
		WillReturnRows(sqlmock.NewRows([]string{"id", "data"}))

	docs, err := store.List(context.Background(), "articles", Query{OrderBy: "date", Direction: Desc})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSQLStoreCreate(t *testing.T) {
	store, mock := newSQLStoreMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`)).
		WithArgs("articles", sqlmock.AnyArg(), `{"title":"Hello world"}`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := store.Create(context.Background(), "articles", map[string]interface{}{"title": "Hello world"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestSQLStoreUpdateMergeUsesJSONConcat(t *testing.T) {
	store, mock := newSQLStoreMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DO UPDATE SET data = documents.data || EXCLUDED.data`)).
		WithArgs("settings", "site", `{"logoUrl":""}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Update(context.Background(), "settings", "site", map[string]interface{}{"logoUrl": ""}, true)
	require.NoError(t, err)
}

func TestSQLStoreUpdateReplace(t *testing.T) {
	store, mock := newSQLStoreMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DO UPDATE SET data = excluded.data`)).
		WithArgs("homepage", "main", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Update(context.Background(), "homepage", "main", map[string]interface{}{"heroImageUrl": "https://x"}, false)
	require.NoError(t, err)
}

func TestSQLStoreFailuresAreUnavailable(t *testing.T) {
	store, mock := newSQLStoreMock(t)
	mock.ExpectExec("DELETE FROM documents").
		WithArgs("events", "e1").
		WillReturnError(errors.New("connection refused"))

	err := store.Delete(context.Background(), "events", "e1")
	assert.ErrorIs(t, err, ErrUnavailable)
}
