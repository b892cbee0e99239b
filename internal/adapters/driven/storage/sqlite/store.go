// Package sqlite provides the durable MaterialStore backed by SQLite.
// Embeddings are stored as little-endian float32 blobs alongside chunk
// text; a material and all its chunks are written in one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/feynlab/contextcore/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/feynlab/contextcore/internal/core/domain"
	"github.com/feynlab/contextcore/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.MaterialStore = (*Store)(nil)

// Store is a SQLite-backed material store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the store at the given data directory.
// If dataDir is empty, ~/.contextcore/data is used.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".contextcore", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "materials.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies all pending numbered migrations in order.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		version, err := migrationVersion(name)
		if err != nil {
			return err
		}
		if version <= currentVersion {
			continue
		}

		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// migrationVersion parses the numeric prefix of a migration filename.
func migrationVersion(name string) (int, error) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, fmt.Errorf("migration %s has no numeric prefix", name)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, fmt.Errorf("migration %s has no numeric prefix: %w", name, err)
	}
	return version, nil
}

// Insert stores a complete material and its chunks in one transaction.
func (s *Store) Insert(ctx context.Context, material *domain.SourceMaterial) error {
	jargonJSON, err := json.Marshal(material.JargonWords)
	if err != nil {
		return fmt.Errorf("marshalling jargon words: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO source_materials (session_id, topic, source_type, source_url, jargon_words, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, material.SessionID, material.Topic, string(material.SourceType),
		material.SourceURL, string(jargonJSON), material.CreatedAt.UTC())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("session %s: %w", material.SessionID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("inserting material: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (session_id, position, content, embedding)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range material.Chunks {
		blob := float32SliceToBytes(chunk.Embedding)
		if _, err := stmt.ExecContext(ctx, material.SessionID, chunk.Index, chunk.Text, blob); err != nil {
			return fmt.Errorf("inserting chunk %d: %w", chunk.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// FindBySessionID retrieves a material with its chunks in index order.
func (s *Store) FindBySessionID(ctx context.Context, sessionID string) (*domain.SourceMaterial, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT session_id, topic, source_type, source_url, jargon_words, created_at
		FROM source_materials WHERE session_id = ?
	`, sessionID)

	material, err := scanMaterial(row)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT position, content, embedding
		FROM chunks WHERE session_id = ?
		ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var chunk domain.Chunk
		var blob []byte
		if err := rows.Scan(&chunk.Index, &chunk.Text, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.Embedding = bytesToFloat32Slice(blob)
		material.Chunks = append(material.Chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return material, nil
}

// List returns all stored materials, most recent first, without chunk
// embeddings loaded (chunk counts are still reported via Chunks length).
func (s *Store) List(ctx context.Context) ([]domain.SourceMaterial, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.session_id, m.topic, m.source_type, m.source_url, m.jargon_words, m.created_at,
		       (SELECT COUNT(*) FROM chunks c WHERE c.session_id = m.session_id)
		FROM source_materials m
		ORDER BY m.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying materials: %w", err)
	}
	defer rows.Close()

	var materials []domain.SourceMaterial
	for rows.Next() {
		var m domain.SourceMaterial
		var sourceType, jargonJSON string
		var chunkCount int
		if err := rows.Scan(&m.SessionID, &m.Topic, &sourceType, &m.SourceURL, &jargonJSON, &m.CreatedAt, &chunkCount); err != nil {
			return nil, fmt.Errorf("scanning material: %w", err)
		}
		m.SourceType = domain.SourceType(sourceType)
		if err := json.Unmarshal([]byte(jargonJSON), &m.JargonWords); err != nil {
			return nil, fmt.Errorf("unmarshalling jargon words: %w", err)
		}
		m.Chunks = make([]domain.Chunk, chunkCount)
		for i := range m.Chunks {
			m.Chunks[i].Index = i
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating materials: %w", err)
	}
	return materials, nil
}

// Delete removes a material; its chunks go with it via cascade.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM source_materials WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("deleting material: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanMaterial reads one material row without chunks.
func scanMaterial(row *sql.Row) (*domain.SourceMaterial, error) {
	var m domain.SourceMaterial
	var sourceType, jargonJSON string
	var createdAt time.Time

	err := row.Scan(&m.SessionID, &m.Topic, &sourceType, &m.SourceURL, &jargonJSON, &createdAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning material: %w", err)
	}

	m.SourceType = domain.SourceType(sourceType)
	m.CreatedAt = createdAt
	if err := json.Unmarshal([]byte(jargonJSON), &m.JargonWords); err != nil {
		return nil, fmt.Errorf("unmarshalling jargon words: %w", err)
	}
	return &m, nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a stored byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
