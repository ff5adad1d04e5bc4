package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Dialect captures the JSON syntax differences between the SQL backends.
type Dialect struct {
	Name string
	// field renders the expression extracting field for comparison against value.
	field func(field string, value interface{}) string
	// order renders the sort expression for field.
	order       func(field string) string
	mergeUpdate string
}

// PostgresDialect stores documents as JSONB.
var PostgresDialect = Dialect{
	Name: "postgres",
	field: func(field string, value interface{}) string {
		if _, ok := toFloat(value); ok {
			return fmt.Sprintf("(data->>'%s')::numeric", field)
		}
		return fmt.Sprintf("data->>'%s'", field)
	},
	order: func(field string) string {
		return fmt.Sprintf("data->'%s'", field)
	},
	mergeUpdate: "documents.data || EXCLUDED.data",
}

// SQLiteDialect stores documents as JSON text and relies on the JSON1 functions.
var SQLiteDialect = Dialect{
	Name: "sqlite",
	field: func(field string, _ interface{}) string {
		return fmt.Sprintf("json_extract(data, '$.%s')", field)
	},
	order: func(field string) string {
		return fmt.Sprintf("json_extract(data, '$.%s')", field)
	},
	mergeUpdate: "json_patch(documents.data, excluded.data)",
}

type documentRow struct {
	ID   string `db:"id"`
	Data []byte `db:"data"`
}

// SQLStore keeps every collection in a single documents table.
type SQLStore struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewSQLStore wraps an open connection. The schema is expected to be migrated already.
func NewSQLStore(db *sqlx.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

func (s *SQLStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	var row documentRow
	query := s.db.Rebind(`SELECT id, data FROM documents WHERE collection = ? AND id = ?`)
	if err := s.db.GetContext(ctx, &row, query, collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, unavailable("get "+collection, err)
	}
	return row.document()
}

func (s *SQLStore) List(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := validateQuery(q); err != nil {
		return nil, unavailable("list "+collection, err)
	}

	var sb strings.Builder
	args := []interface{}{collection}
	sb.WriteString(`SELECT id, data FROM documents WHERE collection = ?`)
	for _, f := range q.Where {
		op := string(f.Op)
		if f.Op == OpEqual {
			op = "="
		}
		fmt.Fprintf(&sb, " AND %s %s ?", s.dialect.field(f.Field, f.Value), op)
		args = append(args, f.Value)
	}
	if q.OrderBy != "" {
		dir := "ASC"
		if q.Direction == Desc {
			dir = "DESC"
		}
		expr := s.dialect.order(q.OrderBy)
		fmt.Fprintf(&sb, " AND %s IS NOT NULL ORDER BY %s %s, seq ASC", expr, expr, dir)
	} else {
		sb.WriteString(" ORDER BY seq ASC")
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(sb.String()), args...); err != nil {
		return nil, unavailable("list "+collection, err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		doc, err := row.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

func (s *SQLStore) Create(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	id := uuid.NewString()
	query := s.db.Rebind(`INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, collection, id, string(payload)); err != nil {
		return "", unavailable("create "+collection, err)
	}
	return id, nil
}

func (s *SQLStore) Update(ctx context.Context, collection, id string, data map[string]interface{}, merge bool) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	set := "excluded.data"
	if merge {
		set = s.dialect.mergeUpdate
	}
	query := s.db.Rebind(fmt.Sprintf(`INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)
ON CONFLICT (collection, id) DO UPDATE SET data = %s, updated_at = CURRENT_TIMESTAMP`, set))
	if _, err := s.db.ExecContext(ctx, query, collection, id, string(payload)); err != nil {
		return unavailable("update "+collection, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, collection, id string) error {
	query := s.db.Rebind(`DELETE FROM documents WHERE collection = ? AND id = ?`)
	if _, err := s.db.ExecContext(ctx, query, collection, id); err != nil {
		return unavailable("delete "+collection, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (r documentRow) document() (*Document, error) {
	data := make(map[string]interface{})
	if len(r.Data) > 0 {
		if err := json.Unmarshal(r.Data, &data); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", r.ID, err)
		}
	}
	return &Document{ID: r.ID, Data: data}, nil
}
