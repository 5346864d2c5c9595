package dictionary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

// Source is a newline-delimited word list.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Open returns a reader over the word list. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a word list from the local filesystem.
type FileSource struct {
	Path string
}

// Name returns the file path.
func (f FileSource) Name() string { return f.Path }

// Open opens the file.
//
// Postcondition: Returns an open file or an error wrapping the os error.
func (f FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("opening word list %s: %w", f.Path, err)
	}
	return file, nil
}

// ReaderSource serves a word list held in memory.
type ReaderSource struct {
	Label string
	Text  string
}

// Name returns the label.
func (r ReaderSource) Name() string { return r.Label }

// Open returns a reader over Text.
func (r ReaderSource) Open(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(r.Text)), nil
}

// ErrHTTPStatus reports a non-2xx response from an HTTP source.
var ErrHTTPStatus = errors.New("dictionary: unexpected HTTP status")

// HTTPSource fetches a word list over HTTP, retrying transient failures with
// exponential backoff. 4xx responses are not retried.
type HTTPSource struct {
	URL      string
	Client   *http.Client
	Attempts uint
	Delay    time.Duration
	Logger   *zap.Logger
}

// Name returns the URL.
func (h HTTPSource) Name() string { return h.URL }

// Open downloads the whole list and returns it as an in-memory reader.
//
// Precondition: h.URL must be an absolute http or https URL.
// Postcondition: Returns the response body, or the last error after all attempts.
func (h HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	attempts := h.Attempts
	if attempts == 0 {
		attempts = 1
	}
	logger := h.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			return h.fetch(ctx, client)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(h.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("retrying word list fetch",
				zap.String("url", h.URL),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching word list %s: %w", h.URL, err)
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (h HTTPSource) fetch(ctx context.Context, client *http.Client) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, retry.Unrecoverable(statusErr)
		}
		return nil, statusErr
	}
	return io.ReadAll(resp.Body)
}

// SourceOptions configures sources built by NewSource.
type SourceOptions struct {
	Client   *http.Client
	Attempts uint
	Delay    time.Duration
	Logger   *zap.Logger
}

// NewSource picks a Source for location: http and https URLs become an
// HTTPSource, anything else a FileSource. An empty location returns nil.
func NewSource(location string, opts SourceOptions) Source {
	switch {
	case location == "":
		return nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return HTTPSource{
			URL:      location,
			Client:   opts.Client,
			Attempts: opts.Attempts,
			Delay:    opts.Delay,
			Logger:   opts.Logger,
		}
	default:
		return FileSource{Path: location}
	}
}
