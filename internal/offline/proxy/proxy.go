// Package proxy is the HTTP front door of the terminal agent. Terminals talk
// to the agent exactly as they would to the real server; the proxy forwards
// when the upstream answers and falls back to the local cache when it does
// not. Mutations captured while offline are queued and acknowledged with 202
// so the terminal can keep selling.
package proxy

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bismillahdumoro-svg/zyracafe/internal/offline/store"
	"github.com/bismillahdumoro-svg/zyracafe/internal/offline/sync"

	"github.com/rs/zerolog/log"
)

// forwardedHeaders are the request headers worth replaying with a queued
// mutation.
var forwardedHeaders = []string{"Authorization", "Content-Type", "X-Request-ID"}

type Proxy struct {
	store   *store.Store
	client  *http.Client
	baseURL string
}

func New(st *store.Store, baseURL string, timeout time.Duration) *Proxy {
	return &Proxy{
		store:   st,
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Remember the latest bearer token for background refreshes.
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		_ = p.store.SetMeta(sync.AuthTokenKey, strings.TrimPrefix(auth, "Bearer "))
	}

	if strings.HasPrefix(r.URL.Path, "/api") {
		p.serveAPI(w, r)
		return
	}
	p.servePage(w, r)
}

// serveAPI is network-first: the upstream answer always wins, the cache only
// speaks when the network cannot.
func (p *Proxy) serveAPI(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	resp, err := p.forward(r, body)
	if err == nil {
		defer resp.Body.Close()
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			p.fallback(w, r, body)
			return
		}
		if r.Method == http.MethodGet && resp.StatusCode == http.StatusOK {
			_ = p.store.CachePage(cacheKey(r), resp.Header.Get("Content-Type"), respBody)
		}
		copyResponse(w, resp, respBody)
		return
	}

	log.Debug().Err(err).Str("path", r.URL.Path).Msg("proxy: upstream unreachable")
	p.fallback(w, r, body)
}

// fallback answers from local state once the upstream has failed.
func (p *Proxy) fallback(w http.ResponseWriter, r *http.Request, body []byte) {
	if r.Method == http.MethodGet {
		p.serveFromCache(w, r)
		return
	}

	// Capture the mutation for replay. The terminal gets a 202 so it can
	// move on; the queued flag tells it the write is not confirmed yet.
	headers := make(map[string]string)
	for _, name := range forwardedHeaders {
		if v := r.Header.Get(name); v != "" {
			headers[name] = v
		}
	}
	seq, err := p.store.Enqueue(store.QueuedRequest{
		Method:   r.Method,
		Path:     r.URL.RequestURI(),
		Headers:  headers,
		Body:     body,
		QueuedAt: time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("proxy: enqueue failed")
		writeOffline(w)
		return
	}
	log.Info().Uint64("seq", seq).Str("method", r.Method).Str("path", r.URL.Path).Msg("proxy: mutation queued")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"queued":  true,
		"seq":     seq,
		"message": "Server tidak terjangkau, transaksi akan dikirim saat online",
	})
}

// serveFromCache prefers the structured mirror over raw cached bytes: the
// mirror reflects the last successful sync, raw bytes the last successful
// request for this exact path.
func (p *Proxy) serveFromCache(w http.ResponseWriter, r *http.Request) {
	if collection := sync.CollectionFor(r.URL.Path); collection != "" {
		docs, err := p.store.GetAll(collection)
		if err == nil {
			if docs == nil {
				docs = []json.RawMessage{}
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Served-From", "agent-cache")
			_ = json.NewEncoder(w).Encode(docs)
			return
		}
	}

	if page, err := p.store.GetPage(cacheKey(r)); err == nil && page != nil {
		w.Header().Set("Content-Type", page.ContentType)
		w.Header().Set("X-Served-From", "agent-cache")
		_, _ = w.Write(page.Body)
		return
	}

	writeOffline(w)
}

// servePage is cache-first: static assets change rarely and latency matters
// more than freshness.
func (p *Proxy) servePage(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if page, err := p.store.GetPage(cacheKey(r)); err == nil && page != nil {
			w.Header().Set("Content-Type", page.ContentType)
			w.Header().Set("X-Served-From", "agent-cache")
			_, _ = w.Write(page.Body)
			return
		}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	resp, err := p.forward(r, body)
	if err != nil {
		writeOffline(w)
		return
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		writeOffline(w)
		return
	}
	if r.Method == http.MethodGet && resp.StatusCode == http.StatusOK {
		_ = p.store.CachePage(cacheKey(r), resp.Header.Get("Content-Type"), respBody)
	}
	copyResponse(w, resp, respBody)
}

func (p *Proxy) forward(r *http.Request, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(r.Context(), r.Method, p.baseURL+r.URL.RequestURI(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header = r.Header.Clone()
	return p.client.Do(req)
}

func copyResponse(w http.ResponseWriter, resp *http.Response, body []byte) {
	for name, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(body)
}

func cacheKey(r *http.Request) string {
	return r.URL.RequestURI()
}

func writeOffline(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "Server tidak terjangkau dan data belum tersedia di cache",
	})
}
