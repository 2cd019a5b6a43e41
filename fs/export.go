// Package fs provides file-based export of crawl results.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/harvest"
)

// Ensure Exporter implements harvest.ResultExporter at compile time.
var _ harvest.ResultExporter = (*Exporter)(nil)

// Exporter writes crawl results as JSON files with atomic publish
// semantics. Results are staged under dir.tmp, then moved atomically into
// dir on Commit, so a partially exported run is never observable.
type Exporter struct {
	dir string
}

// NewExporter creates an Exporter publishing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

func (e *Exporter) tempDir() string {
	return e.dir + ".tmp"
}

// Save stages one result, keyed by its URL path.
func (e *Exporter) Save(ctx context.Context, result *harvest.CrawlResult) error {
	relPath, err := URLToPath(result.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(e.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// Commit atomically replaces the publish directory with the staged results.
func (e *Exporter) Commit() error {
	if err := os.RemoveAll(e.dir); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.dir)
}

// Abort discards the staging directory.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/docs/api → docs/api.json
// URLs differing only in query string get distinct files via a query hash.
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", harvest.Errorf(harvest.EINVALID, "invalid result URL: %v", err)
	}

	var suffix string
	if u.RawQuery != "" {
		suffix = fmt.Sprintf("-%016x", xxhash.Sum64String(u.RawQuery))
	}

	path := u.Path
	if path == "" || path == "/" {
		return "index" + suffix + ".json", nil
	}

	path = strings.TrimPrefix(path, "/")
	if strings.HasSuffix(path, "/") {
		return path + "index" + suffix + ".json", nil
	}
	return path + suffix + ".json", nil
}
