// Package images fetches card images into a local cache and reports the
// loading state the detail view renders: a spinner while loading, the cached
// file once loaded, or a warning placeholder on failure.
package images

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// State is the loading state of one image URL.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateFailed
)

// String returns a lower-case label for the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrEmptyURL is reported for cards without an image URL.
	ErrEmptyURL = errors.New("image URL is empty")
	// ErrInvalidURL is reported for URLs that are not absolute http(s) URLs.
	ErrInvalidURL = errors.New("image URL is invalid")
	// ErrDisabled is reported for every URL when image loading is turned off.
	ErrDisabled = errors.New("image loading is disabled")
)

// Result is the outcome of loading one image.
type Result struct {
	State State
	Path  string
	Err   error
}

// Options configures a Loader.
type Options struct {
	Enabled       bool
	CacheDir      string
	Timeout       time.Duration
	RatePerSecond float64
	HTTPClient    *http.Client
	Logger        *slog.Logger
}

// Loader downloads images into CacheDir. It is safe for concurrent use.
type Loader struct {
	enabled    bool
	cacheDir   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	group singleflight.Group

	mu      sync.Mutex
	results map[string]Result
	pending map[string]struct{}
}

// New creates a Loader. The cache directory is created when loading is
// enabled.
func New(options Options) (*Loader, error) {
	loader := &Loader{
		enabled:  options.Enabled,
		cacheDir: options.CacheDir,
		logger:   options.Logger,
		results:  make(map[string]Result),
		pending:  make(map[string]struct{}),
	}
	if loader.logger == nil {
		loader.logger = slog.New(slog.DiscardHandler)
	}

	if !loader.enabled {
		return loader, nil
	}

	if options.CacheDir == "" {
		return nil, errors.New("image cache directory must not be empty")
	}
	if err := os.MkdirAll(options.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create image cache directory: %w", err)
	}

	loader.httpClient = options.HTTPClient
	if loader.httpClient == nil {
		loader.httpClient = &http.Client{Timeout: options.Timeout}
	}

	limit := rate.Inf
	if options.RatePerSecond > 0 {
		limit = rate.Limit(options.RatePerSecond)
	}
	loader.limiter = rate.NewLimiter(limit, 1)

	return loader, nil
}

// Disabled returns a Loader that fails every URL without network access.
func Disabled() *Loader {
	loader, _ := New(Options{})
	return loader
}

func validate(imageURL string) error {
	if imageURL == "" {
		return ErrEmptyURL
	}
	parsed, err := url.Parse(imageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, imageURL)
	}
	return nil
}

// Status returns the known state of imageURL without fetching it. Unknown
// valid URLs are reported as loading.
func (l *Loader) Status(imageURL string) Result {
	if err := validate(imageURL); err != nil {
		return Result{State: StateFailed, Err: err}
	}
	if !l.enabled {
		return Result{State: StateFailed, Err: ErrDisabled}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if result, ok := l.results[imageURL]; ok {
		return result
	}
	return Result{State: StateLoading}
}

// Claim marks imageURL as about to be fetched and reports whether the caller
// should call Fetch for it. It returns false when the URL already has a
// result, is being fetched, or can never load.
func (l *Loader) Claim(imageURL string) bool {
	if l.Status(imageURL).State != StateLoading {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.results[imageURL]; ok {
		return false
	}
	if _, ok := l.pending[imageURL]; ok {
		return false
	}
	l.pending[imageURL] = struct{}{}
	return true
}

// Fetch loads imageURL into the cache, reusing a cached file when present.
// Concurrent fetches of one URL share a single download. Failures are
// returned as a StateFailed result, never as a panic.
func (l *Loader) Fetch(ctx context.Context, imageURL string) Result {
	if err := validate(imageURL); err != nil {
		return Result{State: StateFailed, Err: err}
	}
	if !l.enabled {
		return Result{State: StateFailed, Err: ErrDisabled}
	}

	l.mu.Lock()
	if result, ok := l.results[imageURL]; ok && result.State == StateLoaded {
		l.mu.Unlock()
		return result
	}
	l.pending[imageURL] = struct{}{}
	l.mu.Unlock()

	value, _, _ := l.group.Do(imageURL, func() (any, error) {
		return l.load(ctx, imageURL), nil
	})
	return value.(Result)
}

// load downloads imageURL and records the result.
func (l *Loader) load(ctx context.Context, imageURL string) Result {
	result := l.fetch(ctx, imageURL)
	if result.Err != nil {
		l.logger.Warn("image could not be loaded", "url", imageURL, "error", result.Err)
	} else {
		l.logger.Debug("image loaded", "url", imageURL, "path", result.Path)
	}

	l.mu.Lock()
	l.results[imageURL] = result
	delete(l.pending, imageURL)
	l.mu.Unlock()

	return result
}

func (l *Loader) fetch(ctx context.Context, imageURL string) Result {
	destPath := l.cachePath(imageURL)
	if _, err := os.Stat(destPath); err == nil {
		return Result{State: StateLoaded, Path: destPath}
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return Result{State: StateFailed, Err: fmt.Errorf("wait for rate limiter: %w", err)}
	}

	if err := l.download(ctx, imageURL, destPath); err != nil {
		return Result{State: StateFailed, Err: err}
	}

	return Result{State: StateLoaded, Path: destPath}
}

// cachePath names the cached file after a hash of the URL, keeping the
// URL's extension.
func (l *Loader) cachePath(imageURL string) string {
	sum := sha256.Sum256([]byte(imageURL))
	extension := ".img"
	if parsed, err := url.Parse(imageURL); err == nil {
		if ext := path.Ext(parsed.Path); ext != "" {
			extension = ext
		}
	}
	return filepath.Join(l.cacheDir, hex.EncodeToString(sum[:16])+extension)
}

// download writes the body of imageURL to destPath through a temporary file
// so a failed transfer never leaves a partial image in the cache.
func (l *Loader) download(ctx context.Context, imageURL, destPath string) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("build image request: %w", err)
	}

	resp, err := l.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	tempFile, err := os.CreateTemp(l.cacheDir, "download-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	if _, err := io.Copy(tempFile, resp.Body); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("write image file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("close image file: %w", err)
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("move image into cache: %w", err)
	}

	return nil
}
