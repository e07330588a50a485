package sync_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bismillahdumoro-svg/zyracafe/internal/offline/store"
	syncpkg "github.com/bismillahdumoro-svg/zyracafe/internal/offline/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_DrainsLeftoverQueueOnStartup(t *testing.T) {
	var replayed atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			replayed.Add(1)
			w.WriteHeader(http.StatusCreated)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/health" || r.URL.Path == "/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	st := openStore(t)
	// Mutations captured during a previous offline stretch, before the
	// agent process was restarted.
	_, err := st.Enqueue(store.QueuedRequest{Method: "POST", Path: "/api/transactions", Body: json.RawMessage(`{"n":1}`)})
	require.NoError(t, err)
	_, err = st.Enqueue(store.QueuedRequest{Method: "POST", Path: "/api/expenses", Body: json.RawMessage(`{"n":2}`)})
	require.NoError(t, err)

	syncer := syncpkg.New(st, srv.URL, time.Second)
	sched := syncpkg.NewScheduler(syncer, time.Hour, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	sched.Run(ctx)

	assert.Equal(t, int32(2), replayed.Load())
	n, err := st.QueueLen()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
