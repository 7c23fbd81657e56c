package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxFileSize is the upload size ceiling in bytes.
const MaxFileSize = 25 << 20 // 25 MB

var (
	// ErrUnsupportedType is returned for MIME types outside the whitelist.
	ErrUnsupportedType = errors.New("unsupported file type: only images and videos are accepted")
	// ErrTooLarge is returned when a file exceeds MaxFileSize.
	ErrTooLarge = errors.New("file exceeds the 25MB size limit")
)

// Kind partitions stored files by media type.
type Kind string

const (
	KindImage Kind = "images"
	KindVideo Kind = "videos"
)

var mimeKinds = map[string]Kind{
	"image/jpeg":      KindImage,
	"image/png":       KindImage,
	"image/gif":       KindImage,
	"image/webp":      KindImage,
	"video/mp4":       KindVideo,
	"video/mpeg":      KindVideo,
	"video/quicktime": KindVideo,
	"video/webm":      KindVideo,
}

// Result describes a stored upload.
type Result struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
	Kind     Kind   `json:"kind"`
}

// Store writes uploaded media under a public static directory, partitioned by
// media kind, and hands back relative URLs served under /uploads/.
type Store struct {
	baseDir string
}

// NewStore creates the upload directories if needed.
func NewStore(baseDir string) (*Store, error) {
	for _, kind := range []Kind{KindImage, KindVideo} {
		if err := os.MkdirAll(filepath.Join(baseDir, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &Store{baseDir: baseDir}, nil
}

// Save validates and persists a multipart upload.
// Validation happens before any bytes are written, and a failed write leaves
// no partial file behind.
func (s *Store) Save(fh *multipart.FileHeader) (*Result, error) {
	mimeType := fh.Header.Get("Content-Type")
	kind, ok := mimeKinds[mimeType]
	if !ok {
		return nil, ErrUnsupportedType
	}
	if fh.Size > MaxFileSize {
		return nil, ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := generateName(fh.Filename)
	path := filepath.Join(s.baseDir, string(kind), name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, MaxFileSize)); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write file: %w", err)
	}

	return &Result{
		URL:      "/uploads/" + string(kind) + "/" + name,
		FileName: name,
		MimeType: mimeType,
		Size:     fh.Size,
		Kind:     kind,
	}, nil
}

// generateName builds a collision-resistant filename from a timestamp, a
// random suffix and the original extension.
func generateName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), suffix, ext)
}
