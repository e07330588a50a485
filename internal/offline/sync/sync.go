// Package sync keeps the terminal agent's local cache converging toward the
// upstream server. It mirrors read-heavy collections on a schedule and
// replays queued mutations once connectivity returns.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bismillahdumoro-svg/zyracafe/internal/offline/store"

	"github.com/rs/zerolog/log"
)

// Endpoint maps one mirrored collection to the upstream route that serves it.
type Endpoint struct {
	Collection string
	Path       string
}

// Endpoints are the collections a terminal needs while the server is down:
// the catalog, the current billiard state and the shift's working data.
// Authenticated endpoints start mirroring once a cashier has logged in
// through the proxy and a token is parked in _meta.
var Endpoints = []Endpoint{
	{Collection: "products", Path: "/api/products"},
	{Collection: "categories", Path: "/api/categories"},
	{Collection: "shifts", Path: "/api/shifts"},
	{Collection: "transactions", Path: "/api/transactions"},
	{Collection: "loans", Path: "/api/loans"},
	{Collection: "expenses", Path: "/api/expenses"},
	{Collection: "stockAdjustments", Path: "/api/stock-adjustments"},
	{Collection: "billiardTables", Path: "/api/billiard-tables"},
	{Collection: "billiardRentals", Path: "/api/billiard-rentals/active"},
}

// CollectionFor resolves an API path to its mirrored collection name.
// Returns "" when the path is not mirrored.
func CollectionFor(path string) string {
	for _, ep := range Endpoints {
		if ep.Path == path {
			return ep.Collection
		}
	}
	return ""
}

// CollectionNames lists every mirrored collection, for store initialization.
func CollectionNames() []string {
	names := make([]string, 0, len(Endpoints))
	for _, ep := range Endpoints {
		names = append(names, ep.Collection)
	}
	return names
}

// AuthTokenKey is the meta key where the proxy parks the last bearer token it
// saw, so refreshes can authenticate against the upstream API.
const AuthTokenKey = "auth_token"

// Refresh outcome metadata, written after every full refresh.
const (
	LastSyncKey     = "last_sync"
	SyncedKey       = "synced"
	TotalRecordsKey = "total_records"
)

type Syncer struct {
	store   *store.Store
	client  *http.Client
	baseURL string
}

func New(st *store.Store, baseURL string, timeout time.Duration) *Syncer {
	return &Syncer{
		store:   st,
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Online reports whether the upstream health endpoint currently answers.
func (s *Syncer) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// FullRefresh re-mirrors every endpoint. A failing endpoint is skipped and
// its stale local copy kept; a refresh never degrades the cache. After all
// endpoints are attempted the outcome metadata is written: timestamp,
// all-succeeded flag and the total record count across collections.
func (s *Syncer) FullRefresh(ctx context.Context) {
	synced := true
	for _, ep := range Endpoints {
		if err := s.refreshEndpoint(ctx, ep); err != nil {
			synced = false
			log.Warn().Err(err).Str("collection", ep.Collection).Msg("sync: refresh skipped")
		}
	}

	total := 0
	for _, ep := range Endpoints {
		if docs, err := s.store.GetAll(ep.Collection); err == nil {
			total += len(docs)
		}
	}
	_ = s.store.SetMeta(LastSyncKey, time.Now().Format(time.RFC3339))
	_ = s.store.SetMeta(SyncedKey, fmt.Sprintf("%t", synced))
	_ = s.store.SetMeta(TotalRecordsKey, fmt.Sprintf("%d", total))
}

// PrimeShell caches the root page so the terminal UI loads even when the
// first request after a restart happens offline.
func (s *Syncer) PrimeShell(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/", nil)
	if err != nil {
		return
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return
	}
	_ = s.store.CachePage("/", resp.Header.Get("Content-Type"), body)
}

func (s *Syncer) refreshEndpoint(ctx context.Context, ep Endpoint) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+ep.Path, nil)
	if err != nil {
		return err
	}
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sync: %s returned %d", ep.Path, resp.StatusCode)
	}

	var docs []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return fmt.Errorf("sync: decode %s: %w", ep.Path, err)
	}

	byID := make(map[string][]byte, len(docs))
	for _, doc := range docs {
		var probe struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(doc, &probe); err != nil || probe.ID == "" {
			return fmt.Errorf("sync: document in %s has no id", ep.Path)
		}
		byID[probe.ID] = doc
	}

	if err := s.store.ReplaceAll(ep.Collection, byID); err != nil {
		return err
	}
	log.Debug().Str("collection", ep.Collection).Int("docs", len(byID)).Msg("sync: refreshed")
	return nil
}

// Replay drains the mutation queue in capture order. A definitive upstream
// answer (2xx or 4xx) removes the entry; a network error or 5xx stops the
// replay so ordering is preserved for the next attempt.
func (s *Syncer) Replay(ctx context.Context) (int, error) {
	pending, err := s.store.Pending()
	if err != nil {
		return 0, err
	}

	replayed := 0
	for _, queued := range pending {
		req, err := http.NewRequestWithContext(ctx, queued.Method, s.baseURL+queued.Path, bytes.NewReader(queued.Body))
		if err != nil {
			return replayed, err
		}
		for k, v := range queued.Headers {
			req.Header.Set(k, v)
		}
		if req.Header.Get("Content-Type") == "" && len(queued.Body) > 0 {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return replayed, fmt.Errorf("sync: replay stopped at seq %d: %w", queued.Seq, err)
		}
		resp.Body.Close()

		if resp.StatusCode >= 500 {
			return replayed, fmt.Errorf("sync: replay stopped at seq %d: upstream %d", queued.Seq, resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			// The server rejected it outright; retrying cannot succeed.
			log.Warn().
				Uint64("seq", queued.Seq).
				Str("method", queued.Method).
				Str("path", queued.Path).
				Int("status", resp.StatusCode).
				Msg("sync: queued mutation rejected, dropping")
		}
		if err := s.store.Remove(queued.Seq); err != nil {
			return replayed, err
		}
		replayed++
	}
	return replayed, nil
}

func (s *Syncer) authorize(req *http.Request) {
	if token, err := s.store.GetMeta(AuthTokenKey); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
