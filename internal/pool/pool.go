// Package pool persists genomes and their lineage in SQLite.
//
// Only canonical genome strings are stored; every read re-parses the row,
// so a corrupted row surfaces as a *dna.InvalidGenomeError.
package pool

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"genelab/internal/genome"
	"genelab/internal/logging"
	"genelab/internal/metrics"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // registers "sqlite" (pure Go)
)

// ErrNotFound is returned when no genome has the requested id.
var ErrNotFound = errors.New("genome not found")

// Entry is one stored genome.
type Entry struct {
	ID         string
	Genome     *genome.Genome
	ParentA    string
	ParentB    string
	Generation int
	CreatedAt  time.Time
}

// Parents returns the non-empty parent ids.
func (e *Entry) Parents() []string {
	var out []string
	for _, p := range []string{e.ParentA, e.ParentB} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Pool is a gene pool backed by a SQLite database.
type Pool struct {
	mu      sync.RWMutex
	db      *sql.DB
	path    string
	metrics *metrics.Collector
}

// Open creates or opens a pool. driver is "sqlite" or "sqlite3".
func Open(driver, path string) (*Pool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create pool directory: %w", err)
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	p := &Pool{db: db, path: path}
	if err := p.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	logging.Pool("pool opened: driver=%s path=%s", driver, path)
	return p, nil
}

// WithMetrics attaches a collector for decode outcomes and returns p.
func (p *Pool) WithMetrics(c *metrics.Collector) *Pool {
	p.metrics = c
	return p
}

// Path returns the database file path.
func (p *Pool) Path() string { return p.path }

// Close closes the database connection.
func (p *Pool) Close() error {
	return p.db.Close()
}

func (p *Pool) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS genomes (
		id TEXT PRIMARY KEY,
		genome TEXT NOT NULL,
		parent_a TEXT,
		parent_b TEXT,
		generation INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_genomes_parent_a ON genomes(parent_a);
	CREATE INDEX IF NOT EXISTS idx_genomes_parent_b ON genomes(parent_b);
	`

	_, err := p.db.Exec(schema)
	return err
}

// Put stores g with up to two parents and returns the new entry. Parents
// must already be in the pool. Generation is one more than the highest
// parent generation, or zero for a genome without parents.
func (p *Pool) Put(g *genome.Genome, parents ...string) (*Entry, error) {
	if len(parents) > 2 {
		return nil, fmt.Errorf("a genome has at most two parents, got %d", len(parents))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	tx, err := p.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	e := &Entry{
		ID:        uuid.New().String(),
		Genome:    g,
		CreatedAt: time.Now(),
	}

	for i, parent := range parents {
		var gen int
		err := tx.QueryRow(`SELECT generation FROM genomes WHERE id = ?`, parent).Scan(&gen)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("parent %s: %w", parent, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parent %s: %w", parent, err)
		}
		if gen+1 > e.Generation {
			e.Generation = gen + 1
		}
		if i == 0 {
			e.ParentA = parent
		} else {
			e.ParentB = parent
		}
	}

	_, err = tx.Exec(`
		INSERT INTO genomes (id, genome, parent_a, parent_b, generation, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, g.String(), nullable(e.ParentA), nullable(e.ParentB),
		e.Generation, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store genome: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit genome: %w", err)
	}

	logging.PoolDebug("genome stored: id=%s generation=%d genes=%d", e.ID, e.Generation, g.Len())
	return e, nil
}

// Get returns the entry with the given id.
func (p *Pool) Get(id string) (*Entry, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.get(id)
}

func (p *Pool) get(id string) (*Entry, error) {
	row := p.db.QueryRow(`
		SELECT id, genome, parent_a, parent_b, generation, created_at
		FROM genomes
		WHERE id = ?`, id)

	e, err := p.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return e, err
}

// List returns up to limit entries, newest first. A limit <= 0 returns all.
func (p *Pool) List(limit int) ([]*Entry, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := p.db.Query(`
		SELECT id, genome, parent_a, parent_b, generation, created_at
		FROM genomes
		ORDER BY rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list genomes: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := p.scan(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Lineage returns every ancestor of id, nearest first (breadth-first).
// Shared ancestors appear once.
func (p *Pool) Lineage(id string) ([]*Entry, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	start, err := p.get(id)
	if err != nil {
		return nil, err
	}

	var ancestors []*Entry
	seen := map[string]bool{id: true}
	queue := start.Parents()
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen[next] {
			continue
		}
		seen[next] = true

		e, err := p.get(next)
		if err != nil {
			return nil, err
		}
		ancestors = append(ancestors, e)
		queue = append(queue, e.Parents()...)
	}
	return ancestors, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (p *Pool) scan(s scanner) (*Entry, error) {
	var (
		e              Entry
		enc            string
		parentA        sql.NullString
		parentB        sql.NullString
		createdAtNanos int64
	)
	if err := s.Scan(&e.ID, &enc, &parentA, &parentB, &e.Generation, &createdAtNanos); err != nil {
		return nil, err
	}

	g, err := genome.Parse(enc)
	p.metrics.ObserveDecode(err)
	if err != nil {
		logging.PoolError("corrupt genome row: id=%s err=%v", e.ID, err)
		return nil, fmt.Errorf("genome %s: %w", e.ID, err)
	}

	e.Genome = g
	e.ParentA = parentA.String
	e.ParentB = parentB.String
	e.CreatedAt = time.Unix(0, createdAtNanos)
	return &e, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
