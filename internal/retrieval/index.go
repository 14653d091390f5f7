package retrieval

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"leavedesk/internal/embedding"
	"leavedesk/internal/logging"
)

// Index is a SQLite-backed vector index over policy chunks. Embeddings are
// stored as JSON arrays and similarity is computed in Go, which keeps the
// index portable (no extension loading) at the scale of one policy document.
type Index struct {
	db     *sql.DB
	engine embedding.Engine
	mu     sync.RWMutex
}

// embedConcurrency bounds parallel embedding calls during an index build.
const embedConcurrency = 4

// NewIndex opens (or creates) the index database at path.
func NewIndex(path string, engine embedding.Engine) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	idx := &Index{db: db, engine: engine}
	if err := idx.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

func (idx *Index) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS policy_chunks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT NOT NULL,
		section INTEGER,
		topic TEXT,
		words INTEGER,
		embedding TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := idx.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Count returns the number of indexed chunks.
func (idx *Index) Count() (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var n int
	err := idx.db.QueryRow(`SELECT COUNT(*) FROM policy_chunks`).Scan(&n)
	return n, err
}

// EnsureBuilt chunks and embeds the document unless the index is already
// populated. Embedding runs with bounded concurrency; one failed chunk fails
// the build so a partial index is never committed.
func (idx *Index) EnsureBuilt(ctx context.Context, document string, chunkSize, overlap int) error {
	n, err := idx.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		logging.Retrieval("policy index already built (%d chunks)", n)
		return nil
	}

	timer := logging.StartTimer(logging.CategoryRetrieval, "EnsureBuilt")
	defer timer.Stop()

	chunks := ChunkDocument(document, chunkSize, overlap)
	logging.Retrieval("building policy index: %d chunks", len(chunks))

	vectors := make([][]float32, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)
	for i := range chunks {
		g.Go(func() error {
			vec, err := idx.engine.Embed(gctx, chunks[i].Text)
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", i, err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO policy_chunks (content, section, topic, words, embedding) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range chunks {
		vecJSON, err := json.Marshal(vectors[i])
		if err != nil {
			return fmt.Errorf("failed to encode embedding: %w", err)
		}
		if _, err := stmt.Exec(c.Text, c.Section, c.Topic, c.Words, string(vecJSON)); err != nil {
			return fmt.Errorf("failed to insert chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index: %w", err)
	}
	logging.Retrieval("policy index built: %d chunks, engine=%s", len(chunks), idx.engine.Name())
	return nil
}

// Search embeds the query and returns the topK most similar chunks.
func (idx *Index) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	if topK <= 0 {
		topK = 3
	}

	queryVec, err := idx.engine.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	idx.mu.RLock()
	rows, err := idx.db.QueryContext(ctx, `SELECT content, section, topic, embedding FROM policy_chunks`)
	if err != nil {
		idx.mu.RUnlock()
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}

	var results []Result
	for rows.Next() {
		var content, topic, vecJSON string
		var section int
		if err := rows.Scan(&content, &section, &topic, &vecJSON); err != nil {
			rows.Close()
			idx.mu.RUnlock()
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		var vec []float32
		if err := json.Unmarshal([]byte(vecJSON), &vec); err != nil {
			continue
		}
		results = append(results, Result{
			Text:    content,
			Score:   float64(embedding.CosineSimilarity(queryVec, vec)),
			Section: section,
			Topic:   topic,
		})
	}
	err = rows.Err()
	rows.Close()
	idx.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to read chunks: %w", err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > topK {
		results = results[:topK]
	}
	for i := range results {
		results[i].Rank = i + 1
	}

	logging.RetrievalDebug("search %q: %d results", query, len(results))
	return results, nil
}
