package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartFileHeader builds a real *multipart.FileHeader by round-tripping a
// form upload through the stdlib parser.
func multipartFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func TestStore_Save(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		content     []byte
		wantKind    Kind
		wantErr     error
	}{
		{
			name:        "jpeg image",
			filename:    "evidence.jpg",
			contentType: "image/jpeg",
			content:     []byte("fake-jpeg-bytes"),
			wantKind:    KindImage,
		},
		{
			name:        "mp4 video",
			filename:    "clip.mp4",
			contentType: "video/mp4",
			content:     []byte("fake-mp4-bytes"),
			wantKind:    KindVideo,
		},
		{
			name:        "pdf rejected",
			filename:    "report.pdf",
			contentType: "application/pdf",
			content:     []byte("%PDF-1.4"),
			wantErr:     ErrUnsupportedType,
		},
		{
			name:        "executable rejected",
			filename:    "payload.exe",
			contentType: "application/octet-stream",
			content:     []byte{0x4d, 0x5a},
			wantErr:     ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			store, err := NewStore(dir)
			require.NoError(t, err)

			fh := multipartFileHeader(t, tt.filename, tt.contentType, tt.content)
			result, err := store.Save(fh)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)

				// A rejected upload must not leave files behind.
				for _, kind := range []Kind{KindImage, KindVideo} {
					entries, err := os.ReadDir(filepath.Join(dir, string(kind)))
					require.NoError(t, err)
					assert.Empty(t, entries)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, result.Kind)
			assert.Equal(t, tt.contentType, result.MimeType)
			assert.Equal(t, int64(len(tt.content)), result.Size)
			assert.True(t, strings.HasPrefix(result.URL, "/uploads/"+string(tt.wantKind)+"/"))
			assert.True(t, strings.HasSuffix(result.FileName, strings.ToLower(filepath.Ext(tt.filename))))

			stored, err := os.ReadFile(filepath.Join(dir, string(tt.wantKind), result.FileName))
			require.NoError(t, err)
			assert.Equal(t, tt.content, stored)
		})
	}
}

func TestStore_Save_RejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	// Size is checked before any bytes are read, so the header alone is enough.
	fh := &multipart.FileHeader{
		Filename: "huge.mp4",
		Header:   textproto.MIMEHeader{"Content-Type": {"video/mp4"}},
		Size:     MaxFileSize + 1,
	}

	result, err := store.Save(fh)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Nil(t, result)
}

func TestStore_Save_UniqueNames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		fh := multipartFileHeader(t, "same.png", "image/png", []byte("png-bytes"))
		result, err := store.Save(fh)
		require.NoError(t, err)
		assert.False(t, seen[result.FileName], "duplicate name %s", result.FileName)
		seen[result.FileName] = true
	}
}

func TestNewStore_CreatesKindDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	_, err := NewStore(dir)
	require.NoError(t, err)

	for _, kind := range []Kind{KindImage, KindVideo} {
		info, err := os.Stat(filepath.Join(dir, string(kind)))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
