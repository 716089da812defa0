// Package langdata downloads tesseract .traineddata language models.
// Files are fetched once into an XDG cache and then copied into the
// tessdata directory, so re-provisioning a host does not re-download.
package langdata

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/ocr-dataentry/ocrsetup/internal/defs"
)

// Fetcher downloads and installs traineddata files.
type Fetcher struct {
	client   *retryablehttp.Client
	mirror   string
	cacheDir string
	logger   *slog.Logger
}

// NewFetcher creates a Fetcher for the given mirror base URL.
// The download cache lives under the XDG cache home.
func NewFetcher(mirror string, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	mirror = strings.TrimRight(mirror, "/")
	return &Fetcher{
		client:   client,
		mirror:   mirror,
		cacheDir: filepath.Join(xdg.CacheHome, "ocrsetup", "tessdata", cacheKey(mirror)),
		logger:   logger,
	}
}

// cacheKey derives a per-mirror cache subdirectory, so switching
// mirrors never serves another mirror's cached files.
func cacheKey(mirror string) string {
	host := "mirror"
	if u, err := url.Parse(mirror); err == nil && u.Host != "" {
		host = u.Host
	}
	sum := sha256.Sum256([]byte(mirror))
	return fmt.Sprintf("%s-%x", host, sum[:4])
}

// SetCacheDir overrides the cache location (used in tests).
func (f *Fetcher) SetCacheDir(dir string) {
	f.cacheDir = dir
}

// URLFor returns the download URL for a language code.
func (f *Fetcher) URLFor(lang string) string {
	return f.mirror + "/" + lang + defs.TraineddataExt
}

// CachePath returns the cache location for a language code.
func (f *Fetcher) CachePath(lang string) string {
	return filepath.Join(f.cacheDir, lang+defs.TraineddataExt)
}

// Fetch downloads the traineddata for lang into the cache, returning the
// cached path and the file size. A non-empty cached file short-circuits
// the download.
func (f *Fetcher) Fetch(ctx context.Context, lang string) (string, int64, error) {
	path := f.CachePath(lang)
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		f.logger.Debug("cache hit", "lang", lang, "path", path)
		return path, info.Size(), nil
	}

	if err := os.MkdirAll(f.cacheDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create cache dir: %w", err)
	}

	url := f.URLFor(lang)
	f.logger.Info("downloading language data", "lang", lang, "url", url)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(f.cacheDir, lang+".*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	size, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpName)
		return "", 0, fmt.Errorf("write %s: %w", tmpName, err)
	}
	if size == 0 {
		os.Remove(tmpName)
		return "", 0, fmt.Errorf("download %s: empty body", url)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", 0, fmt.Errorf("move into cache: %w", err)
	}

	return path, size, nil
}

// Install fetches the traineddata for lang and copies it into the
// tessdata directory. Returns the installed path and the file size.
// Writing into a root-owned tessdata directory fails with a clear error
// rather than silently escalating.
func (f *Fetcher) Install(ctx context.Context, lang, tessdataDir string) (string, int64, error) {
	cached, size, err := f.Fetch(ctx, lang)
	if err != nil {
		return "", 0, err
	}

	if err := os.MkdirAll(tessdataDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create tessdata dir %s (rerun with sudo?): %w", tessdataDir, err)
	}

	target := filepath.Join(tessdataDir, lang+defs.TraineddataExt)
	if sameFile(cached, target) {
		return target, size, nil
	}

	src, err := os.Open(cached)
	if err != nil {
		return "", 0, fmt.Errorf("open cached file: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(tessdataDir, lang+".*")
	if err != nil {
		return "", 0, fmt.Errorf("write to %s (rerun with sudo?): %w", tessdataDir, err)
	}
	tmpName := tmp.Name()

	_, err = io.Copy(tmp, src)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpName)
		return "", 0, fmt.Errorf("copy traineddata: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return "", 0, fmt.Errorf("chmod traineddata: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", 0, fmt.Errorf("install traineddata: %w", err)
	}

	return target, size, nil
}

// sameFile reports whether both paths resolve to the same inode.
func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
