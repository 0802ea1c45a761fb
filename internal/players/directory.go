package players

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/hkaanengin/opendota-mcp-server/internal/resolve"
)

// defaultCacheCap bounds the write-back cache; the oldest live-search
// result is evicted once the cap is reached. Seeded entries never count
// against the cap and are never evicted.
const defaultCacheCap = 256

// Searcher is the one upstream call the directory needs. Satisfied by
// *opendota.Client.
type Searcher interface {
	Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error)
}

// Directory converts player nicknames to numeric account IDs. Known
// nicknames are seeded at startup; misses fall through to the /search
// endpoint (one rate-limited call) and the first result wins.
type Directory struct {
	client Searcher

	mu      sync.Mutex
	seeded  map[string]string
	learned map[string]string
	order   []string // learned keys, oldest first, for eviction
	cap     int
}

// defaultSeed covers the friend group this server was originally built
// around; config can extend or override it.
var defaultSeed = map[string]string{
	"kürlo":        "116856452",
	"ömer":         "149733355",
	"hotpocalypse": "79233435",
	"special one":  "107409939",
	"xinobillie":   "36872251",
	"zøcnutex":     "110249858",
}

func NewDirectory(client Searcher, extra map[string]string) *Directory {
	seeded := make(map[string]string, len(defaultSeed)+len(extra))
	for k, v := range defaultSeed {
		seeded[strings.ToLower(k)] = v
	}
	for k, v := range extra {
		seeded[strings.ToLower(k)] = v
	}
	return &Directory{
		client:  client,
		seeded:  seeded,
		learned: map[string]string{},
		cap:     defaultCacheCap,
	}
}

// AccountID returns the numeric account ID for a nickname, hitting the
// cache first and the live search endpoint on a miss.
func (d *Directory) AccountID(ctx context.Context, nickname string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(nickname))

	d.mu.Lock()
	if id, ok := d.seeded[key]; ok {
		d.mu.Unlock()
		return id, nil
	}
	if id, ok := d.learned[key]; ok {
		d.mu.Unlock()
		return id, nil
	}
	d.mu.Unlock()

	params := url.Values{}
	params.Set("q", nickname)
	raw, err := d.client.Get(ctx, "/search", params)
	if err != nil {
		return "", err
	}

	var results []struct {
		AccountID int `json:"account_id"`
	}
	if err := json.Unmarshal(raw, &results); err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", &resolve.NotFoundError{Kind: "player", Input: nickname}
	}

	id := strconv.Itoa(results[0].AccountID)
	d.remember(key, id)
	slog.Info("resolved player", "nickname", nickname, "account_id", id)
	return id, nil
}

// ResolveList maps a mixed list of nicknames and numeric IDs to account
// IDs, preserving order.
func (d *Directory) ResolveList(ctx context.Context, values []string) ([]string, error) {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, err := strconv.Atoi(v); err == nil {
			out = append(out, v)
			continue
		}
		id, err := d.AccountID(ctx, v)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (d *Directory) remember(key, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.learned[key]; ok {
		return
	}
	if len(d.order) >= d.cap {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.learned, oldest)
	}
	d.learned[key] = id
	d.order = append(d.order, key)
}

// CachedCount reports how many learned entries sit in the cache.
func (d *Directory) CachedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.learned)
}
