package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/srtdeck/srtdeck/constant"
	"github.com/srtdeck/srtdeck/filesystem"
)

var (
	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("unexpected status")
	// ErrTooLarge is returned when a source exceeds the size cap.
	ErrTooLarge = errors.New("source too large")
)

// IsRemote reports whether source is an http(s) URL rather than a local path.
func IsRemote(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// ReadSource returns the contents of a subtitle source: an http(s) URL fetched with
// Client, or a path read from the application filesystem. Anything larger than
// maxBytes is rejected; timeout bounds remote fetches when positive.
func ReadSource(ctx context.Context, source string, maxBytes int64, timeout time.Duration) (string, error) {
	if IsRemote(source) {
		return fetch(ctx, source, maxBytes, timeout)
	}
	return readFile(source, maxBytes)
}

func fetch(ctx context.Context, source string, maxBytes int64, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("get %s: %w: %s", source, ErrStatus, resp.Status)
	}

	return readLimited(resp.Body, maxBytes)
}

func readFile(path string, maxBytes int64) (string, error) {
	f, err := filesystem.API().Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && maxBytes > 0 && info.Size() > maxBytes {
		return "", fmt.Errorf("%s: %w: %d bytes", path, ErrTooLarge, info.Size())
	}

	return readLimited(f, maxBytes)
}

func readLimited(r io.Reader, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		data, err := io.ReadAll(r)
		return string(data), err
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxBytes)
	}
	return string(data), nil
}
