package sync_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/bismillahdumoro-svg/zyracafe/internal/offline/store"
	syncpkg "github.com/bismillahdumoro-svg/zyracafe/internal/offline/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "agent.db"), syncpkg.CollectionNames())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOnline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	st := openStore(t)
	syncer := syncpkg.New(st, srv.URL, time.Second)
	assert.True(t, syncer.Online(context.Background()))

	srv.Close()
	assert.False(t, syncer.Online(context.Background()))
}

func TestFullRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/products":
			w.Write([]byte(`[{"id":"p1","name":"Kopi"},{"id":"p2","name":"Es Teh"}]`))
		case "/api/categories":
			w.Write([]byte(`[{"id":"c1","name":"Minuman"}]`))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	st := openStore(t)
	syncer := syncpkg.New(st, srv.URL, time.Second)
	syncer.FullRefresh(context.Background())

	// Documents are mirrored keyed by their id.
	v, err := st.Get("products", "p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","name":"Kopi"}`, string(v))

	all, err := st.GetAll("products")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cats, err := st.GetAll("categories")
	require.NoError(t, err)
	assert.Len(t, cats, 1)

	// Outcome metadata records the attempt.
	synced, err := st.GetMeta(syncpkg.SyncedKey)
	require.NoError(t, err)
	assert.Equal(t, "true", synced)
	total, err := st.GetMeta(syncpkg.TotalRecordsKey)
	require.NoError(t, err)
	assert.Equal(t, "3", total)
	lastSync, err := st.GetMeta(syncpkg.LastSyncKey)
	require.NoError(t, err)
	assert.NotEmpty(t, lastSync)
}

func TestFullRefresh_RepeatedRefreshIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/products":
			w.Write([]byte(`[{"id":"p1","name":"Kopi","price":12000},{"id":"p2","name":"Es Teh","price":5000}]`))
		case "/api/categories":
			w.Write([]byte(`[{"id":"c1","name":"Minuman"}]`))
		case "/api/billiard-tables":
			w.Write([]byte(`[{"id":"t1","tableNumber":"1"},{"id":"t2","tableNumber":"2"}]`))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	st := openStore(t)
	syncer := syncpkg.New(st, srv.URL, time.Second)

	syncer.FullRefresh(context.Background())

	first := make(map[string][]json.RawMessage)
	for _, name := range syncpkg.CollectionNames() {
		docs, err := st.GetAll(name)
		require.NoError(t, err)
		first[name] = docs
	}

	// A second pass over the same upstream dataset must leave every
	// mirrored collection exactly as the first pass did.
	syncer.FullRefresh(context.Background())

	for _, name := range syncpkg.CollectionNames() {
		docs, err := st.GetAll(name)
		require.NoError(t, err)
		assert.Equal(t, first[name], docs, "collection %s changed on refresh", name)
	}

	total, err := st.GetMeta(syncpkg.TotalRecordsKey)
	require.NoError(t, err)
	assert.Equal(t, "5", total)
}

func TestFullRefresh_FailingEndpointKeepsStaleCopy(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.Put("products", "p1", []byte(`{"id":"p1","name":"Kopi"}`)))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/products" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"c1","name":"Minuman"}]`))
	}))
	defer srv.Close()

	syncer := syncpkg.New(st, srv.URL, time.Second)
	syncer.FullRefresh(context.Background())

	// The failing endpoint kept its stale mirror; the others refreshed.
	v, err := st.Get("products", "p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","name":"Kopi"}`, string(v))

	cats, err := st.GetAll("categories")
	require.NoError(t, err)
	assert.Len(t, cats, 1)

	synced, err := st.GetMeta(syncpkg.SyncedKey)
	require.NoError(t, err)
	assert.Equal(t, "false", synced)
}

func TestFullRefresh_SendsStoredToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/products" {
			gotAuth = r.Header.Get("Authorization")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	st := openStore(t)
	require.NoError(t, st.SetMeta(syncpkg.AuthTokenKey, "tok123"))

	syncer := syncpkg.New(st, srv.URL, time.Second)
	syncer.FullRefresh(context.Background())
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestReplay_DrainsInOrder(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	st := openStore(t)
	_, err := st.Enqueue(store.QueuedRequest{Method: "POST", Path: "/api/transactions", Body: json.RawMessage(`{"n":1}`)})
	require.NoError(t, err)
	_, err = st.Enqueue(store.QueuedRequest{Method: "POST", Path: "/api/loans", Body: json.RawMessage(`{"n":2}`)})
	require.NoError(t, err)

	syncer := syncpkg.New(st, srv.URL, time.Second)
	replayed, err := syncer.Replay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, replayed)
	assert.Equal(t, []string{"/api/transactions", "/api/loans"}, paths)

	n, err := st.QueueLen()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestReplay_ServerErrorStopsAndPreservesQueue(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusCreated)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	st := openStore(t)
	_, err := st.Enqueue(store.QueuedRequest{Method: "POST", Path: "/api/transactions"})
	require.NoError(t, err)
	seq2, err := st.Enqueue(store.QueuedRequest{Method: "POST", Path: "/api/transactions"})
	require.NoError(t, err)
	_, err = st.Enqueue(store.QueuedRequest{Method: "POST", Path: "/api/loans"})
	require.NoError(t, err)

	syncer := syncpkg.New(st, srv.URL, time.Second)
	replayed, err := syncer.Replay(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, replayed)

	// The failed entry and everything after it stay queued, in order.
	pending, err := st.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, seq2, pending[0].Seq)
}

func TestReplay_RejectedMutationDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	st := openStore(t)
	_, err := st.Enqueue(store.QueuedRequest{Method: "POST", Path: "/api/transactions", Body: json.RawMessage(`{"bad":true}`)})
	require.NoError(t, err)

	syncer := syncpkg.New(st, srv.URL, time.Second)
	replayed, err := syncer.Replay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, replayed)

	// 4xx is a definitive answer; the entry must not poison the queue.
	n, err := st.QueueLen()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestReplay_ForwardsCapturedHeaders(t *testing.T) {
	var gotAuth, gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	st := openStore(t)
	_, err := st.Enqueue(store.QueuedRequest{
		Method:  "POST",
		Path:    "/api/transactions",
		Headers: map[string]string{"Authorization": "Bearer tok123"},
		Body:    json.RawMessage(`{"n":1}`),
	})
	require.NoError(t, err)

	syncer := syncpkg.New(st, srv.URL, time.Second)
	_, err = syncer.Replay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "application/json", gotCT)
}

func TestCollectionFor(t *testing.T) {
	assert.Equal(t, "products", syncpkg.CollectionFor("/api/products"))
	assert.Equal(t, "billiardRentals", syncpkg.CollectionFor("/api/billiard-rentals/active"))
	assert.Empty(t, syncpkg.CollectionFor("/api/shifts/active"))
}

func TestPrimeShell(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html>kasir</html>"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	st := openStore(t)
	syncer := syncpkg.New(st, srv.URL, time.Second)
	syncer.PrimeShell(context.Background())

	page, err := st.GetPage("/")
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, "<html>kasir</html>", string(page.Body))
}
