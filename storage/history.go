package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	bolt "go.etcd.io/bbolt"
)

var historyBucket = []byte("query_history")

// HistoryStore persists per-query search counts in BoltDB. It feeds the
// suggestions endpoint with the most searched prior queries.
type HistoryStore struct {
	db *bolt.DB
}

// NewHistoryStore opens (or creates) the history database at path.
func NewHistoryStore(path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for history db: %w", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(historyBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &HistoryStore{db: db}, nil
}

// RecordQuery increments the search count for a query. Queries are
// stored lower-cased and trimmed; blanks are ignored.
func (s *HistoryStore) RecordQuery(query string) error {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(historyBucket)
		key := []byte(query)

		var count uint64
		if v := b.Get(key); v != nil {
			count = binary.BigEndian.Uint64(v)
		}
		count++

		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, count)
		return b.Put(key, buf)
	})
}

// TopQueries returns up to n prior queries starting with prefix,
// most searched first. The prefix match is case-insensitive.
func (s *HistoryStore) TopQueries(prefix string, n int) ([]string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	type entry struct {
		query string
		count uint64
	}
	var matches []entry

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(historyBucket).Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(p); k != nil && strings.HasPrefix(string(k), prefix); k, v = c.Next() {
			matches = append(matches, entry{
				query: string(k),
				count: binary.BigEndian.Uint64(v),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].count != matches[j].count {
			return matches[i].count > matches[j].count
		}
		return matches[i].query < matches[j].query
	})

	if len(matches) > n {
		matches = matches[:n]
	}
	queries := make([]string, 0, len(matches))
	for _, m := range matches {
		queries = append(queries, m.query)
	}
	return queries, nil
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
