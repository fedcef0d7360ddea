package images

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ArchiveDir is the directory inside the archive that holds the images.
const ArchiveDir = "property_images"

// MaxArchiveSize is the largest archive FetchArchive reads into memory.
const MaxArchiveSize = 256 << 20

var (
	// ErrDownload is returned when the archive can't be fetched.
	ErrDownload = errors.New("images: archive download failed")

	// ErrArchiveTooLarge is returned when the archive exceeds MaxArchiveSize.
	ErrArchiveTooLarge = errors.New("images: archive too large")
)

// FetchArchive downloads the zip archive at url into memory. Archives larger
// than MaxArchiveSize are rejected.
func FetchArchive(ctx context.Context, client *http.Client, url string) (*zip.Reader, error) {
	return fetchArchive(ctx, client, url, MaxArchiveSize)
}

func fetchArchive(ctx context.Context, client *http.Client, url string, limit int64) (*zip.Reader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrDownload, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrArchiveTooLarge, limit)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return zr, nil
}
