package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

func createRoom(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	roomID, ok := body["room_id"].(string)
	if !ok || roomID == "" {
		t.Fatalf("expected room_id in response, got %#v", body)
	}
	return roomID
}

func joinPlayer(t *testing.T, ts *httptest.Server, roomID, userID, name string) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/join", map[string]string{
		"user_id": userID,
		"name":    name,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected join status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

// fixedWordProvider hands out words in order, cycling when exhausted.
type fixedWordProvider struct {
	mu    sync.Mutex
	words []string
	index int
}

func newFixedWordProvider(words ...string) *fixedWordProvider {
	return &fixedWordProvider{words: words}
}

func (p *fixedWordProvider) SampleOne(ctx context.Context) (Word, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	word := p.words[p.index%len(p.words)]
	p.index++
	return Word{Text: word}, nil
}
