package opendota

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hkaanengin/opendota-mcp-server/internal/config"
	"github.com/hkaanengin/opendota-mcp-server/internal/ratelimit"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.Config{
		BaseURL:        srv.URL,
		APIKey:         "secret-token-value",
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    5 * time.Second,
	}
	c := NewClient(cfg, ratelimit.New(100))
	t.Cleanup(c.Close)
	return c, srv
}

func TestGetSendsAuthAndParams(t *testing.T) {
	var gotAuth string
	var gotQuery url.Values
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"win": 10, "lose": 5}`))
	})

	params := url.Values{}
	params.Set("hero_id", "86")
	params.Add("against_hero_id", "1")
	params.Add("against_hero_id", "8")

	raw, err := c.Get(context.Background(), "/players/123/wl", params)
	if err != nil {
		t.Fatal(err)
	}
	var wl map[string]int
	if err := json.Unmarshal(raw, &wl); err != nil {
		t.Fatal(err)
	}
	if wl["win"] != 10 {
		t.Errorf("win = %d, want 10", wl["win"])
	}
	if gotAuth != "Bearer secret-token-value" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if got := gotQuery["against_hero_id"]; len(got) != 2 || got[0] != "1" || got[1] != "8" {
		t.Errorf("against_hero_id repeated values = %v", got)
	}
}

func TestGetStatusError(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(strings.Repeat("x", 500)))
	})

	_, err := c.Get(context.Background(), "/players/0", nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != http.StatusNotFound {
		t.Errorf("Code = %d, want 404", se.Code)
	}
	if len(se.Body) != bodyPreviewLimit {
		t.Errorf("body preview length = %d, want %d", len(se.Body), bodyPreviewLimit)
	}
	if se.Method != http.MethodGet || !strings.Contains(se.Error(), "GET /players/0") {
		t.Errorf("message does not name the method: %q", se.Error())
	}
}

func TestPostStatusErrorNamesMethod(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	})

	_, err := c.Post(context.Background(), "/request/1")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Method != http.MethodPost || !strings.Contains(se.Error(), "POST /request/1") {
		t.Errorf("message does not name the method: %q", se.Error())
	}
}

func TestGetTransportError(t *testing.T) {
	cfg := &config.Config{
		BaseURL:        "http://127.0.0.1:1", // nothing listens here
		ConnectTimeout: 200 * time.Millisecond,
		ReadTimeout:    time.Second,
	}
	c := NewClient(cfg, ratelimit.New(100))
	defer c.Close()

	_, err := c.Get(context.Background(), "/heroes", nil)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
}

func TestLazyClientConstructedOnce(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	clients := make([]*http.Client, 8)
	var wg sync.WaitGroup
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i] = c.httpClient()
		}(i)
	}
	wg.Wait()
	for i := 1; i < len(clients); i++ {
		if clients[i] != clients[0] {
			t.Fatal("concurrent first callers constructed distinct http clients")
		}
	}
}

func TestPostParseRequest(t *testing.T) {
	var gotMethod, gotPath string
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"job": {"jobId": 42}}`))
	})

	raw, err := c.Post(context.Background(), "/request/8054301932")
	if err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodPost || gotPath != "/request/8054301932" {
		t.Errorf("got %s %s", gotMethod, gotPath)
	}
	if !strings.Contains(string(raw), "jobId") {
		t.Errorf("unexpected body: %s", raw)
	}
}
