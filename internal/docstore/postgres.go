// File: internal/docstore/postgres.go
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"civic-reports/internal/apperr"
	"civic-reports/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresStore 以單一 documents 資料表 (collection, id, data jsonb) 實作 Store
type PostgresStore struct {
	db database.DB
}

func NewPostgresStore(db database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Collection(name string) Collection {
	return &pgCollection{db: s.db, name: name}
}

type pgCollection struct {
	db   database.DB
	name string
}

func (c *pgCollection) Add(ctx context.Context, fields map[string]any) (string, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("Add: %w", err)
	}
	id := uuid.NewString()
	if _, err := c.db.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`,
		c.name, id, data,
	); err != nil {
		return "", fmt.Errorf("Add: %w", err)
	}
	return id, nil
}

func (c *pgCollection) Get(ctx context.Context, id string) (*Document, error) {
	row := c.db.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		c.name, id,
	)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("Get: %w", err)
	}
	doc := &Document{ID: id}
	if err := json.Unmarshal(raw, &doc.Data); err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return doc, nil
}

func (c *pgCollection) Query(ctx context.Context, eq map[string]any) ([]Document, error) {
	filter, err := json.Marshal(eq)
	if err != nil {
		return nil, fmt.Errorf("Query: %w", err)
	}
	// jsonb 包含運算即等值條件的 AND 組合
	rows, err := c.db.Query(ctx,
		`SELECT id, data FROM documents WHERE collection = $1 AND data @> $2 ORDER BY created_at`,
		c.name, filter,
	)
	if err != nil {
		return nil, fmt.Errorf("Query: %w", err)
	}
	return collectDocs(rows)
}

func (c *pgCollection) Update(ctx context.Context, id string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	tag, err := c.db.Exec(ctx,
		`UPDATE documents SET data = data || $3 WHERE collection = $1 AND id = $2`,
		c.name, id, patch,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (c *pgCollection) Delete(ctx context.Context, id string) error {
	tag, err := c.db.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		c.name, id,
	)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (c *pgCollection) Scan(ctx context.Context) ([]Document, error) {
	rows, err := c.db.Query(ctx,
		`SELECT id, data FROM documents WHERE collection = $1 ORDER BY created_at`,
		c.name,
	)
	if err != nil {
		return nil, fmt.Errorf("Scan: %w", err)
	}
	return collectDocs(rows)
}

func collectDocs(rows pgx.Rows) ([]Document, error) {
	defer rows.Close()
	var docs []Document
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		doc := Document{ID: id}
		if err := json.Unmarshal(raw, &doc.Data); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", id, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
