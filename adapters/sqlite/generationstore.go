package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pychain/forge/domain/generation"
	"github.com/pychain/forge/ports"
)

// GenerationStore implements ports.GenerationStore using SQLite.
type GenerationStore struct {
	db *DB
}

// NewGenerationStore creates a new SQLite generation store.
func NewGenerationStore(db *DB) *GenerationStore {
	return &GenerationStore{db: db}
}

// Save stores a generation record.
func (s *GenerationStore) Save(ctx context.Context, rec generation.Record) error {
	modules, err := json.Marshal(rec.Modules)
	if err != nil {
		return fmt.Errorf("marshal modules: %w", err)
	}
	params, err := json.Marshal(rec.Parameters)
	if err != nil {
		return fmt.Errorf("marshal parameters: %w", err)
	}
	diags, err := json.Marshal(rec.Diagnostics)
	if err != nil {
		return fmt.Errorf("marshal diagnostics: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO generations (id, archetype_id, contract_name, modules, parameters, source, diagnostics, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.ArchetypeID, rec.ContractName, string(modules), string(params),
		rec.Source, string(diags), rec.CreatedAt)
	return err
}

// Get retrieves a record by ID.
func (s *GenerationStore) Get(ctx context.Context, id string) (generation.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, archetype_id, contract_name, modules, parameters, source, diagnostics, created_at
		FROM generations WHERE id = ?
	`, id)

	rec, err := scanGeneration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return generation.Record{}, ports.ErrNotFound
	}
	return rec, err
}

// List returns the most recent records, newest first.
func (s *GenerationStore) List(ctx context.Context, limit int) ([]generation.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, archetype_id, contract_name, modules, parameters, source, diagnostics, created_at
		FROM generations ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []generation.Record
	for rows.Next() {
		rec, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGeneration(s scanner) (generation.Record, error) {
	var rec generation.Record
	var modules, params, diags string

	err := s.Scan(&rec.ID, &rec.ArchetypeID, &rec.ContractName, &modules, &params,
		&rec.Source, &diags, &rec.CreatedAt)
	if err != nil {
		return generation.Record{}, err
	}

	if err := json.Unmarshal([]byte(modules), &rec.Modules); err != nil {
		return generation.Record{}, fmt.Errorf("unmarshal modules: %w", err)
	}
	if err := json.Unmarshal([]byte(params), &rec.Parameters); err != nil {
		return generation.Record{}, fmt.Errorf("unmarshal parameters: %w", err)
	}
	if err := json.Unmarshal([]byte(diags), &rec.Diagnostics); err != nil {
		return generation.Record{}, fmt.Errorf("unmarshal diagnostics: %w", err)
	}
	// Normalize empty JSON to nil for comparability with fresh records.
	if len(rec.Diagnostics) == 0 {
		rec.Diagnostics = nil
	}

	return rec, nil
}
