package storage

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/pkg/errors"
)

// ErrObjectNotFound is returned when the store answers 404 for a key.
var ErrObjectNotFound = errors.New("storage: object not found")

// sniffLen is how many leading bytes filetype needs to recognise a format.
const sniffLen = 262

// GetOptions controls a single Get.
type GetOptions struct {
	// ValidateObjectExistence sends a HEAD first so a missing key fails before any download.
	// Off by default: one round trip less, but a missing object only surfaces when the GET fails.
	ValidateObjectExistence bool
}

// Object is a fetched object stored on local disk.
type Object struct {
	Key         string
	Path        string
	ContentType string
	Size        int64
}

// Client reads objects from a bucket exposed over HTTP(S) (S3-style "base/prefix+key" URLs)
// and caches them under a local directory.
type Client struct {
	baseURL  string
	prefix   string
	cacheDir string
	client   *http.Client
}

// New returns a Client for baseURL. prefix is prepended to every key (e.g. "public/").
// timeout bounds each HTTP request; zero means no client-side timeout.
func New(baseURL, prefix, cacheDir string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		prefix:   prefix,
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: timeout},
	}
}

// URL returns the object URL for key, escaping each path segment.
func (c *Client) URL(key string) string {
	full := strings.TrimPrefix(c.prefix+key, "/")
	segs := strings.Split(full, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return c.baseURL + "/" + strings.Join(segs, "/")
}

// Get downloads key into the cache directory and returns where it was stored.
func (c *Client) Get(ctx context.Context, key string, opts GetOptions) (Object, error) {
	if c.baseURL == "" {
		return Object{}, errors.Errorf("storage: no base URL configured for %q", key)
	}
	if key == "" {
		return Object{}, errors.New("storage: empty key")
	}
	if opts.ValidateObjectExistence {
		if err := c.head(ctx, key); err != nil {
			return Object{}, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(key), nil)
	if err != nil {
		return Object{}, errors.Wrapf(err, "storage: get %s", key)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Object{}, errors.Wrapf(err, "storage: get %s", key)
	}
	defer resp.Body.Close()
	if err := statusErr(resp, key); err != nil {
		return Object{}, err
	}

	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return Object{}, errors.Wrapf(err, "storage: get %s", key)
	}
	path := filepath.Join(c.cacheDir, CacheName(key))
	tmp := path + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return Object{}, errors.Wrapf(err, "storage: get %s", key)
	}

	body := bufio.NewReaderSize(resp.Body, sniffLen)
	head, _ := body.Peek(sniffLen)
	contentType := sniff(head, resp.Header.Get("Content-Type"))

	n, err := io.Copy(out, body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return Object{}, errors.Wrapf(err, "storage: get %s", key)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return Object{}, errors.Wrapf(err, "storage: get %s", key)
	}
	return Object{Key: key, Path: path, ContentType: contentType, Size: n}, nil
}

func (c *Client) head(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.URL(key), nil)
	if err != nil {
		return errors.Wrapf(err, "storage: head %s", key)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "storage: head %s", key)
	}
	resp.Body.Close()
	return statusErr(resp, key)
}

func statusErr(resp *http.Response, key string) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return errors.Wrap(ErrObjectNotFound, key)
	default:
		return errors.Errorf("storage: %s %s: HTTP %d", resp.Request.Method, key, resp.StatusCode)
	}
}

// sniff prefers the detected format over the declared header, which buckets often leave as
// application/octet-stream.
func sniff(head []byte, declared string) string {
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = declared[:i]
	}
	declared = strings.TrimSpace(declared)
	if declared == "" {
		return "application/octet-stream"
	}
	return declared
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// CacheName maps an object key to a flat, filesystem-safe file name.
func CacheName(key string) string {
	name := safeNameRe.ReplaceAllString(key, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "object"
	}
	if len(name) > 96 {
		name = name[len(name)-96:]
	}
	return name
}

// IsNotFound reports whether err means the object does not exist.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrObjectNotFound
}
