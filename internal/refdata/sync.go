package refdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Files are the dotaconstants build artifacts the catalog reads.
var Files = []string{
	"heroes.json",
	"items.json",
	"item_ids.json",
	"hero_lore.json",
	"aghs_desc.json",
}

const defaultConstantsURL = "https://raw.githubusercontent.com/odota/dotaconstants/master/build"

// Syncer downloads the reference JSON files into a local directory so
// the server can start with a warm catalog. Files already on disk are
// kept unless Force is set.
type Syncer struct {
	HTTP    *http.Client
	BaseURL string
	Dir     string
	Force   bool
	Sleep   time.Duration
}

func NewSyncer(dir string) *Syncer {
	return &Syncer{
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		BaseURL: defaultConstantsURL,
		Dir:     dir,
		Sleep:   250 * time.Millisecond,
	}
}

// Sync fetches every reference file, skipping ones that exist unless
// forced. It keeps going past individual failures and reports the first
// error at the end, so one bad file does not abort the rest.
func (s *Syncer) Sync(ctx context.Context) error {
	var firstErr error
	for _, name := range Files {
		path := filepath.Join(s.Dir, name)
		if !s.Force {
			if _, err := os.Stat(path); err == nil {
				slog.Debug("refdata file up to date", "file", name)
				continue
			}
		}
		if err := s.fetchFile(ctx, name, path); err != nil {
			slog.Error("refdata sync failed", "file", name, "err", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		slog.Info("refdata file synced", "file", name)
		if s.Sleep > 0 {
			select {
			case <-time.After(s.Sleep):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return firstErr
}

func (s *Syncer) fetchFile(ctx context.Context, name, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/"+name, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s failed: %d", name, resp.StatusCode)
	}
	// Refuse to write something the catalog will not be able to parse.
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("%s is not valid JSON: %w", name, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
