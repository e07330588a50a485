// Package store is the durable cache backing the offline terminal agent.
// A single bbolt file holds one bucket per mirrored collection, a metadata
// bucket, a byte-level page cache and the pending mutation queue. All writes
// go through bolt transactions, so a crash mid-write never leaves a
// half-updated cache.
package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	metaBucket  = "_meta"
	queueBucket = "_queue"
	pagesBucket = "_pages"

	versionKey = "schema_version"
)

// SchemaVersion is bumped whenever the cached document shape changes.
// Opening a store written by an older version wipes all cached data; the
// next full refresh repopulates it.
const SchemaVersion = 1

type Store struct {
	db          *bolt.DB
	collections []string
}

// Open opens (or creates) the store file and prepares all buckets.
// A schema version mismatch clears every cache bucket but keeps the
// mutation queue: queued requests must survive agent upgrades.
func Open(path string, collections []string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	s := &Store{db: db, collections: collections}

	err = db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
		if err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(queueBucket)); err != nil {
			return err
		}

		stored := string(meta.Get([]byte(versionKey)))
		current := fmt.Sprintf("%d", SchemaVersion)
		if stored != "" && stored != current {
			for _, name := range collections {
				if tx.Bucket([]byte(name)) != nil {
					if err := tx.DeleteBucket([]byte(name)); err != nil {
						return err
					}
				}
			}
			if tx.Bucket([]byte(pagesBucket)) != nil {
				if err := tx.DeleteBucket([]byte(pagesBucket)); err != nil {
					return err
				}
			}
		}
		if err := meta.Put([]byte(versionKey), []byte(current)); err != nil {
			return err
		}

		for _, name := range collections {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		_, err = tx.CreateBucketIfNotExists([]byte(pagesBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init buckets: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// ── Collections ──────────────────────────────────────────────────────────────

func (s *Store) Put(collection, key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return fmt.Errorf("store: unknown collection %q", collection)
		}
		return b.Put([]byte(key), value)
	})
}

// Get returns nil with no error when the key is absent.
func (s *Store) Get(collection, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return fmt.Errorf("store: unknown collection %q", collection)
		}
		if v := b.Get([]byte(key)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, err
}

// GetAll returns every document in the collection in key order.
func (s *Store) GetAll(collection string) ([]json.RawMessage, error) {
	var out []json.RawMessage
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return fmt.Errorf("store: unknown collection %q", collection)
		}
		return b.ForEach(func(_, v []byte) error {
			out = append(out, append([]byte(nil), v...))
			return nil
		})
	})
	return out, err
}

func (s *Store) Delete(collection, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return fmt.Errorf("store: unknown collection %q", collection)
		}
		return b.Delete([]byte(key))
	})
}

// ReplaceAll swaps the entire collection for the given documents in one
// transaction. Readers never observe a partially refreshed collection.
func (s *Store) ReplaceAll(collection string, docs map[string][]byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(collection)) != nil {
			if err := tx.DeleteBucket([]byte(collection)); err != nil {
				return err
			}
		}
		b, err := tx.CreateBucket([]byte(collection))
		if err != nil {
			return err
		}
		for key, doc := range docs {
			if err := b.Put([]byte(key), doc); err != nil {
				return err
			}
		}
		return nil
	})
}

// ── Metadata ─────────────────────────────────────────────────────────────────

func (s *Store) SetMeta(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(metaBucket)).Put([]byte(key), []byte(value))
	})
}

func (s *Store) GetMeta(key string) (string, error) {
	var out string
	err := s.db.View(func(tx *bolt.Tx) error {
		out = string(tx.Bucket([]byte(metaBucket)).Get([]byte(key)))
		return nil
	})
	return out, err
}

// ── Page cache ───────────────────────────────────────────────────────────────
// Byte-level responses keyed by request path, used as a last-resort fallback
// when no structured collection covers the request.

type CachedPage struct {
	ContentType string    `json:"contentType"`
	Body        []byte    `json:"body"`
	CachedAt    time.Time `json:"cachedAt"`
}

func (s *Store) CachePage(path, contentType string, body []byte) error {
	page := CachedPage{ContentType: contentType, Body: body, CachedAt: time.Now()}
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(pagesBucket)).Put([]byte(path), data)
	})
}

// GetPage returns nil when the path has never been cached.
func (s *Store) GetPage(path string) (*CachedPage, error) {
	var page *CachedPage
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(pagesBucket)).Get([]byte(path))
		if v == nil {
			return nil
		}
		page = &CachedPage{}
		return json.Unmarshal(v, page)
	})
	return page, err
}

// ── Mutation queue ───────────────────────────────────────────────────────────

// QueuedRequest is one write captured while the upstream server was
// unreachable. Seq preserves capture order across restarts.
type QueuedRequest struct {
	Seq      uint64            `json:"-"`
	Method   string            `json:"method"`
	Path     string            `json:"path"`
	Headers  map[string]string `json:"headers,omitempty"`
	Body     json.RawMessage   `json:"body,omitempty"`
	QueuedAt time.Time         `json:"queuedAt"`
}

// Enqueue appends a request to the replay queue and returns its sequence.
func (s *Store) Enqueue(req QueuedRequest) (uint64, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(queueBucket))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		req.Seq = seq
		data, err := json.Marshal(req)
		if err != nil {
			return err
		}
		return b.Put(seqKey(seq), data)
	})
	return seq, err
}

// Pending returns all queued requests in enqueue order.
func (s *Store) Pending() ([]QueuedRequest, error) {
	var out []QueuedRequest
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(queueBucket)).ForEach(func(k, v []byte) error {
			var req QueuedRequest
			if err := json.Unmarshal(v, &req); err != nil {
				return err
			}
			req.Seq = binary.BigEndian.Uint64(k)
			out = append(out, req)
			return nil
		})
	})
	return out, err
}

// Remove drops a replayed request from the queue.
func (s *Store) Remove(seq uint64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(queueBucket)).Delete(seqKey(seq))
	})
}

// QueueLen reports how many mutations are waiting for replay.
func (s *Store) QueueLen() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(queueBucket)).Stats().KeyN
		return nil
	})
	return n, err
}

// seqKey encodes the sequence big-endian so bolt iterates in enqueue order.
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
