// Package attach turns a screenshot file into a data URL that can be
// embedded in a trade record.
package attach

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes caps attachment size.
const DefaultMaxBytes = 5 << 20

var (
	ErrNotImage = errors.New("attachment is not an image")
	ErrTooLarge = errors.New("attachment too large")
	ErrEmpty    = errors.New("attachment is empty")
)

// Decoder reads attachments.
type Decoder struct {
	MaxBytes int64
}

// Decode reads the file at path with the default size cap.
func Decode(ctx context.Context, path string) (string, error) {
	return Decoder{MaxBytes: DefaultMaxBytes}.Decode(ctx, path)
}

type result struct {
	url string
	err error
}

// Decode reads and encodes the file at path on its own goroutine and
// waits for it. There is no way to abort a decode once started; ctx
// only bounds how long the caller waits.
func (d Decoder) Decode(ctx context.Context, path string) (string, error) {
	done := make(chan result, 1)
	go func() {
		url, err := d.decodeFile(path)
		done <- result{url, err}
	}()

	select {
	case r := <-done:
		return r.url, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (d Decoder) decodeFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return d.DecodeReader(f)
}

// DecodeReader encodes everything read from r.
func (d Decoder) DecodeReader(r io.Reader) (string, error) {
	limit := d.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read attachment: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: over %d bytes", ErrTooLarge, limit)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}
	return DataURL(mt.String(), data), nil
}

// DataURL builds a base64 data URL.
func DataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURL splits a base64 data URL into its media type and payload.
func ParseDataURL(url string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URL without payload")
	}
	mediaType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("data URL is not base64")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("data URL payload: %w", err)
	}
	return mediaType, data, nil
}

// Extension returns a file extension for a data URL's media type, used
// when writing an embedded screenshot back out.
func Extension(mediaType string) string {
	if mt := mimetype.Lookup(mediaType); mt != nil {
		return mt.Extension()
	}
	return ".bin"
}
