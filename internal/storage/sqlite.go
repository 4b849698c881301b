package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"flowmap/internal/graph"
)

// SQLiteStore persists analysis snapshots. Each save replaces the previous
// snapshot wholesale; the database always reflects exactly one analysis run.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS definitions (
			identifier TEXT,
			file TEXT,
			name TEXT,
			kind TEXT,
			line INTEGER,
			end_line INTEGER,
			PRIMARY KEY (identifier, file)
		);`,
		`CREATE TABLE IF NOT EXISTS edges (
			from_name TEXT,
			from_file TEXT,
			to_name TEXT,
			to_file TEXT,
			type TEXT,
			call_order INTEGER,
			line INTEGER,
			awaited INTEGER,
			PRIMARY KEY (from_name, from_file, to_name, to_file)
		);`,
		`CREATE TABLE IF NOT EXISTS files (
			path TEXT PRIMARY KEY,
			position INTEGER
		);`,
		`CREATE INDEX IF NOT EXISTS idx_definitions_file ON definitions(file);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveResult stores the analysis result as the current snapshot, replacing
// whatever was saved before.
func (s *SQLiteStore) SaveResult(ctx context.Context, r *graph.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"definitions", "edges", "files"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for _, def := range r.AllDefinitions() {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO definitions (identifier, file, name, kind, line, end_line)
		VALUES (?, ?, ?, ?, ?, ?)`,
			def.Identifier, def.File, def.Name, string(def.Kind), def.Line, def.EndLine)
		if err != nil {
			return fmt.Errorf("failed to save definition %s: %w", def.Name, err)
		}
	}

	for _, e := range r.Dependencies {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO edges (from_name, from_file, to_name, to_file, type, call_order, line, awaited)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.From, e.FromFile, e.To, e.ToFile, string(e.Type), e.Order, e.Line, boolToInt(e.Awaited))
		if err != nil {
			return fmt.Errorf("failed to save edge %s->%s: %w", e.From, e.To, err)
		}
	}

	for i, f := range r.Files {
		if _, err := tx.ExecContext(ctx, "INSERT INTO files (path, position) VALUES (?, ?)", f, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadResult reads back the stored snapshot.
func (s *SQLiteStore) LoadResult(ctx context.Context) (*graph.Result, error) {
	r := &graph.Result{}

	rows, err := s.db.QueryContext(ctx,
		"SELECT identifier, file, name, kind, line, end_line FROM definitions ORDER BY file, line")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		def := &graph.Definition{}
		var kind string
		if err := rows.Scan(&def.Identifier, &def.File, &def.Name, &kind, &def.Line, &def.EndLine); err != nil {
			return nil, err
		}
		def.Kind = graph.Kind(kind)
		switch def.Kind {
		case graph.KindWorkflow:
			r.Workflows = append(r.Workflows, def)
		case graph.KindComponent:
			r.Components = append(r.Components, def)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	edgeRows, err := s.db.QueryContext(ctx,
		"SELECT from_name, from_file, to_name, to_file, type, call_order, line, awaited FROM edges ORDER BY from_file, call_order")
	if err != nil {
		return nil, err
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var e graph.Edge
		var typ string
		var awaited int
		if err := edgeRows.Scan(&e.From, &e.FromFile, &e.To, &e.ToFile, &typ, &e.Order, &e.Line, &awaited); err != nil {
			return nil, err
		}
		e.Type = graph.EdgeType(typ)
		e.Awaited = awaited != 0
		r.Dependencies = append(r.Dependencies, e)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, err
	}

	fileRows, err := s.db.QueryContext(ctx, "SELECT path FROM files ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer fileRows.Close()

	for fileRows.Next() {
		var path string
		if err := fileRows.Scan(&path); err != nil {
			return nil, err
		}
		r.Files = append(r.Files, path)
	}
	return r, fileRows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
