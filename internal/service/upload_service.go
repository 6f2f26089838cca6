package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"folio/internal/config"
	"folio/internal/models"
	"folio/internal/observability"

	"github.com/chai2010/webp"
	"go.opentelemetry.io/otel/attribute"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultUploadDir       = "./uploads"
	DefaultMaxUploadSizeMB = 10
	MasterMaxSize          = 2048
	WebPQuality            = 80

	// UploadsPath is the public route stored files are served under.
	UploadsPath = "/uploads"
)

type UploadInput struct {
	Filename    string
	ContentType string
	Content     []byte
	// BaseURL prefixes the returned URL when no public base URL is configured.
	BaseURL string
}

type UploadResult struct {
	URL       string `json:"url"`
	Filename  string `json:"filename"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SizeBytes int64  `json:"sizeBytes"`
}

// UploadService normalizes uploaded images to WebP and stores them content-addressed.
type UploadService struct {
	uploadDir          string
	publicBaseURL      string
	maxUploadSizeBytes int64
}

func NewUploadService(cfg *config.Config) *UploadService {
	uploadDir := DefaultUploadDir
	maxUploadSizeMB := DefaultMaxUploadSizeMB
	var baseURL string

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.UploadMaxSizeMB > 0 {
			maxUploadSizeMB = cfg.UploadMaxSizeMB
		}
		baseURL = cfg.PublicBaseURL
	}

	return &UploadService{
		uploadDir:          uploadDir,
		publicBaseURL:      strings.TrimRight(baseURL, "/"),
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Dir is the directory uploads are written to.
func (s *UploadService) Dir() string {
	return s.uploadDir
}

// MaxUploadSizeBytes is the largest accepted upload.
func (s *UploadService) MaxUploadSizeBytes() int64 {
	return s.maxUploadSizeBytes
}

func (s *UploadService) Upload(ctx context.Context, in UploadInput) (result *UploadResult, err error) {
	_, finish := observability.StartSpan(ctx, "UploadService.Upload", attribute.Int("upload.size_bytes", len(in.Content)))
	defer func() { finish(err) }()

	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}
	if !isSupportedDecodedFormat(format) {
		return nil, models.NewValidationError("Unsupported image format")
	}

	sourceMimeType := decodedFormatToMime(format)
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !isMatchingContentType(provided, sourceMimeType) {
		return nil, models.NewValidationError("Image content type mismatch")
	}

	master := resizeToFit(decoded, MasterMaxSize, MasterMaxSize)
	encoded, err := encodeWebP(master, WebPQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	name := contentHash(encoded) + ".webp"
	path := filepath.Join(s.uploadDir, name)
	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		if err := writeBytesToFile(path, encoded); err != nil {
			return nil, models.NewInternalError(err)
		}
	} else if statErr != nil {
		return nil, models.NewInternalError(statErr)
	}

	base := s.publicBaseURL
	if base == "" {
		base = strings.TrimRight(in.BaseURL, "/")
	}

	bounds := master.Bounds()
	return &UploadResult{
		URL:       base + UploadsPath + "/" + name,
		Filename:  name,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		SizeBytes: int64(len(encoded)),
	}, nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scale := float64(maxWidth) / float64(w)
	if scaleH := float64(maxHeight) / float64(h); scaleH < scale {
		scale = scaleH
	}
	newW := max(int(float64(w)*scale), 1)
	newH := max(int(float64(h)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func isSupportedDecodedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func decodedFormatToMime(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
