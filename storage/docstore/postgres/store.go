// Package postgres implements the DocumentStore on a single JSONB-backed
// table. Collections are rows sharing a collection name; document fields
// live in a jsonb column so the store stays schemaless like the interface.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/studydesk/core"
)

type Store struct {
	db *sqlx.DB
}

var _ core.DocumentStore = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Query(ctx context.Context, collection string, q core.Query) ([]core.Document, error) {
	query := strings.Builder{}
	query.WriteString("SELECT id, fields FROM document WHERE collection = $1")
	args := []interface{}{collection}

	for _, f := range q.Filters {
		n := len(args) + 1
		switch f.Op {
		case core.FilterEq:
			query.WriteString(fmt.Sprintf(" AND fields->>'%s' = $%d", f.Field, n))
			args = append(args, textValue(f.Value))
		case core.FilterGte:
			query.WriteString(fmt.Sprintf(" AND fields->>'%s' >= $%d", f.Field, n))
			args = append(args, textValue(f.Value))
		case core.FilterLte:
			query.WriteString(fmt.Sprintf(" AND fields->>'%s' <= $%d", f.Field, n))
			args = append(args, textValue(f.Value))
		case core.FilterArrayContains:
			query.WriteString(fmt.Sprintf(" AND fields->'%s' @> $%d::jsonb", f.Field, n))
			val, err := json.Marshal([]interface{}{f.Value})
			if err != nil {
				return nil, errors.Wrapf(err, "encoding %s filter value", f.Field)
			}
			args = append(args, string(val))
		default:
			return nil, errors.Errorf("unsupported filter operator %q", f.Op)
		}
	}

	if len(q.Ordering) > 0 {
		clauses := make([]string, 0, len(q.Ordering))
		for _, ord := range q.Ordering {
			direction := "DESC"
			if ord.Ascending {
				direction = "ASC"
			}
			clauses = append(clauses, fmt.Sprintf("fields->>'%s' %s", ord.Field, direction))
		}
		query.WriteString(" ORDER BY " + strings.Join(clauses, ", "))
	} else {
		query.WriteString(" ORDER BY seq") // insertion order
	}

	if q.Limit > 0 {
		query.WriteString(fmt.Sprintf(" LIMIT %d", q.Limit))
	}

	rows, err := s.db.QueryxContext(ctx, query.String(), args...)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", collection)
	}
	defer func() { _ = rows.Close() }()

	var docs []core.Document
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err = rows.Scan(&id, &raw); err != nil {
			return nil, errors.Wrapf(err, "scanning %s document", collection)
		}
		fields := make(map[string]interface{})
		if err = json.Unmarshal(raw, &fields); err != nil {
			return nil, errors.Wrapf(err, "decoding %s document %s", collection, id)
		}
		docs = append(docs, core.Document{ID: id, Fields: fields})
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "querying %s", collection)
	}
	return docs, nil
}

func (s *Store) Insert(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", errors.Wrapf(err, "encoding %s document", collection)
	}

	var id string
	err = s.db.QueryRowxContext(ctx,
		"INSERT INTO document (collection, fields) VALUES ($1, $2) RETURNING id",
		collection, raw,
	).Scan(&id)
	if err != nil {
		return "", errors.Wrapf(err, "inserting into %s", collection)
	}
	return id, nil
}

func (s *Store) UpdatePartial(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return errors.Wrapf(err, "encoding %s document", collection)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE document SET fields = fields || $3 WHERE collection = $1 AND id = $2",
		collection, id, raw,
	)
	if err != nil {
		return errors.Wrapf(err, "updating %s document %s", collection, id)
	}
	return checkAffected(res)
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM document WHERE collection = $1 AND id = $2",
		collection, id,
	)
	if err != nil {
		return errors.Wrapf(err, "deleting %s document %s", collection, id)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "checking affected rows")
	}
	if n == 0 {
		return core.ErrDocumentNotFound
	}
	return nil
}

// textValue renders a filter value the way postgres' ->> operator renders
// the stored field, so comparisons line up for strings, numbers and bools.
func textValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.Trim(string(raw), `"`)
}
