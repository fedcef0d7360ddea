package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchArchive_sizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	t.Cleanup(srv.Close)

	_, err := fetchArchive(context.Background(), srv.Client(), srv.URL, 63)
	require.ErrorIs(t, err, ErrArchiveTooLarge)
	assert.NotErrorIs(t, err, ErrDownload)

	// At the limit the body is read in full and handed to the zip reader.
	_, err = fetchArchive(context.Background(), srv.Client(), srv.URL, 64)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrArchiveTooLarge)
}
