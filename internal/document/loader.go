// Package document loads the reference climbing guide PDF once and serves its
// load state, page count and page text.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"github.com/ruthgorge/expedition/internal/provider/resilience"
)

// Document errors.
var (
	ErrNotReady         = errors.New("document not ready")
	ErrPageOutOfRange   = errors.New("page out of range")
	ErrNoDocumentSource = errors.New("no document url configured")
	ErrPageUnreadable   = errors.New("page unreadable")
)

// Defaults.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 64 << 20
	DownloadName    = "Alaska_Climbing_Guide.pdf"
)

// State is the load lifecycle of the document.
type State string

// Load states.
const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Status is a snapshot of the loader.
type Status struct {
	State       State      `json:"state"`
	URL         string     `json:"url"`
	FallbackURL string     `json:"fallbackUrl,omitempty"`
	PageCount   int        `json:"pageCount,omitempty"`
	Size        int        `json:"size,omitempty"`
	Error       string     `json:"error,omitempty"`
	LoadedAt    *time.Time `json:"loadedAt,omitempty"`
}

// Page is the extracted text of one page.
type Page struct {
	Number int    `json:"number"`
	Total  int    `json:"total"`
	Text   string `json:"text"`
}

// LoaderConfig holds configuration for creating a Loader.
type LoaderConfig struct {
	URL         string
	FallbackURL string
	Timeout     time.Duration
	MaxBytes    int64
	Client      *resilience.Client
	Logger      zerolog.Logger
}

// Loader fetches the document in the background. The load is started once
// and never retried; callers observe it through Status and Wait.
type Loader struct {
	url      string
	fallback string
	timeout  time.Duration
	maxBytes int64
	client   *resilience.Client
	logger   zerolog.Logger

	once sync.Once
	done chan struct{}

	mu       sync.RWMutex
	state    State
	err      error
	raw      []byte
	reader   *pdf.Reader
	pages    int
	loadedAt time.Time
}

// NewLoader creates a new document loader in the loading state.
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.Client == nil {
		clientCfg := resilience.DefaultClientConfig("reference-document")
		clientCfg.MaxRetries = 1
		cfg.Client = resilience.NewClient(clientCfg)
	}
	if cfg.FallbackURL == "" {
		cfg.FallbackURL = cfg.URL
	}

	return &Loader{
		url:      cfg.URL,
		fallback: cfg.FallbackURL,
		timeout:  cfg.Timeout,
		maxBytes: cfg.MaxBytes,
		client:   cfg.Client,
		logger:   cfg.Logger,
		done:     make(chan struct{}),
		state:    StateLoading,
	}
}

// Start begins the load in a goroutine. Later calls do nothing. The load
// is bounded by the configured timeout, not by ctx's lifetime beyond
// cancellation at shutdown.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		go l.load(ctx)
	})
}

func (l *Loader) load(ctx context.Context) {
	defer close(l.done)

	if l.url == "" {
		l.fail(ErrNoDocumentSource)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	start := time.Now()
	body, err := l.client.Fetch(ctx, l.url, l.maxBytes)
	if err != nil {
		l.fail(fmt.Errorf("fetch document: %w", err))
		return
	}

	reader, pages, err := parse(body)
	if err != nil {
		l.fail(fmt.Errorf("parse document: %w", err))
		return
	}

	l.mu.Lock()
	l.state = StateReady
	l.raw = body
	l.reader = reader
	l.pages = pages
	l.loadedAt = time.Now()
	l.mu.Unlock()

	l.logger.Info().
		Str("url", l.url).
		Int("pages", pages).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("reference document loaded")
}

// parse opens the PDF and counts its pages. The pdf package panics on
// malformed cross-reference data, so panics become errors here.
func parse(body []byte) (reader *pdf.Reader, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			reader, pages, err = nil, 0, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err = pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, 0, err
	}
	return reader, reader.NumPage(), nil
}

func (l *Loader) fail(err error) {
	l.mu.Lock()
	l.state = StateError
	l.err = err
	l.mu.Unlock()

	l.logger.Warn().
		Err(err).
		Str("url", l.url).
		Str("fallback_url", l.fallback).
		Msg("reference document unavailable")
}

// Status returns the current load state.
func (l *Loader) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Status{State: l.state, URL: l.url}
	switch l.state {
	case StateReady:
		s.PageCount = l.pages
		s.Size = len(l.raw)
		loaded := l.loadedAt
		s.LoadedAt = &loaded
	case StateError:
		s.FallbackURL = l.fallback
		if l.err != nil {
			s.Error = l.err.Error()
		}
	}
	return s
}

// Wait blocks until the load finishes or ctx is done and returns the status
// at that point. Giving up on ctx does not cancel the load.
func (l *Loader) Wait(ctx context.Context) Status {
	select {
	case <-l.done:
	case <-ctx.Done():
	}
	return l.Status()
}

// Page returns the text of page n, counted from 1.
func (l *Loader) Page(n int) (Page, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.state != StateReady {
		return Page{}, ErrNotReady
	}
	total := l.pages
	if n < 1 || n > total {
		return Page{}, ErrPageOutOfRange
	}

	text, err := pageText(l.reader, n)
	if err != nil {
		return Page{}, err
	}
	return Page{Number: n, Total: total, Text: text}, nil
}

func pageText(reader *pdf.Reader, n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: page %d: %v", ErrPageUnreadable, n, r)
		}
	}()

	p := reader.Page(n)
	if p.V.IsNull() {
		return "", nil
	}
	var b strings.Builder
	for _, t := range p.Content().Text {
		b.WriteString(t.S)
	}
	return b.String(), nil
}

// Bytes returns the raw PDF.
func (l *Loader) Bytes() ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.state != StateReady {
		return nil, ErrNotReady
	}
	return l.raw, nil
}
