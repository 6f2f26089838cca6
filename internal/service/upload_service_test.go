package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/config"
	"folio/internal/models"
	"folio/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadService_StoresWebP(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(&config.Config{UploadDir: dir, UploadMaxSizeMB: 5, PublicBaseURL: "https://cdn.example.com"})

	content := testutil.TinyPNG(t, 64, 32)
	res, err := svc.Upload(context.Background(), UploadInput{Filename: "a.png", ContentType: "image/png", Content: content})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.URL, "https://cdn.example.com/uploads/"))
	assert.True(t, strings.HasSuffix(res.Filename, ".webp"))
	assert.Equal(t, 64, res.Width)
	assert.Equal(t, 32, res.Height)

	stored, err := os.ReadFile(filepath.Join(dir, res.Filename))
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(stored[:4]))
	assert.Equal(t, "WEBP", string(stored[8:12]))

	again, err := svc.Upload(context.Background(), UploadInput{Filename: "b.png", Content: content})
	require.NoError(t, err)
	assert.Equal(t, res.URL, again.URL, "identical content is stored once")
}

func TestUploadService_DownsizesLargeImages(t *testing.T) {
	svc := NewUploadService(&config.Config{UploadDir: t.TempDir()})

	res, err := svc.Upload(context.Background(), UploadInput{
		Content: testutil.TinyPNG(t, 4096, 2048),
		BaseURL: "http://localhost:3000/",
	})
	require.NoError(t, err)
	assert.Equal(t, MasterMaxSize, res.Width)
	assert.Equal(t, MasterMaxSize/2, res.Height)
	assert.True(t, strings.HasPrefix(res.URL, "http://localhost:3000/uploads/"))
}

func TestUploadService_Validation(t *testing.T) {
	svc := NewUploadService(&config.Config{UploadDir: t.TempDir(), UploadMaxSizeMB: 1})

	tests := []struct {
		name string
		in   UploadInput
	}{
		{"empty", UploadInput{}},
		{"not an image", UploadInput{Content: []byte("hello, this is plain text")}},
		{"too large", UploadInput{Content: make([]byte, 2*1024*1024)}},
		{"type mismatch", UploadInput{ContentType: "image/gif", Content: testutil.TinyPNG(t, 4, 4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), tt.in)
			assertCode(t, err, models.CodeValidation)
		})
	}
}
