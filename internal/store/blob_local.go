package store

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/models"
)

// LocalPicturesPath is the URL path prefix under which the HTTP server
// exposes pictures of the local store.
const LocalPicturesPath = "/pictures/"

// localPictureStorage is the filesystem implementation of [PictureStorage]
// used when no S3 bucket is configured.
type localPictureStorage struct {
	dir       string
	publicURL string
	logger    *logger.Logger
}

// NewLocalPictureStorage creates dir if needed. Returned URLs have the form
// publicURL + LocalPicturesPath + key.
func NewLocalPictureStorage(dir, publicURL string, log *logger.Logger) (PictureStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Err(err).Str("func", "NewLocalPictureStorage").Str("dir", dir).Msg("error creating pictures dir")
		return nil, fmt.Errorf("error creating pictures dir: %w", err)
	}

	log.Info().Str("dir", dir).Msg("local picture storage created")

	return &localPictureStorage{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    log,
	}, nil
}

// Put implements [PictureStorage].
func (l *localPictureStorage) Put(ctx context.Context, key string, picture models.Picture) (string, error) {
	log := logger.FromContext(ctx)

	path, ok := l.path(key)
	if !ok {
		return "", fmt.Errorf("%w: invalid key %q", ErrUploadingPicture, key)
	}

	if err := os.WriteFile(path, picture.Data, 0o644); err != nil {
		log.Err(err).Str("func", "*localPictureStorage.Put").Str("key", key).Msg("error writing picture")
		return "", fmt.Errorf("%w: %w", ErrUploadingPicture, err)
	}

	return l.publicURL + LocalPicturesPath + url.PathEscape(key), nil
}

// Get implements [PictureStorage]. The content type is derived from the
// file extension, falling back to sniffing the content.
func (l *localPictureStorage) Get(ctx context.Context, key string) (models.Picture, error) {
	log := logger.FromContext(ctx)

	path, ok := l.path(key)
	if !ok {
		return models.Picture{}, ErrPictureNotFound
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return models.Picture{}, ErrPictureNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*localPictureStorage.Get").Str("key", key).Msg("error reading picture")
		return models.Picture{}, fmt.Errorf("%w: %w", ErrReadingPicture, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return models.Picture{FileName: key, ContentType: contentType, Data: data}, nil
}

// path maps key to a file inside dir. Keys with path separators or
// relative components are rejected.
func (l *localPictureStorage) path(key string) (string, bool) {
	if key == "" || key == "." || key == ".." || filepath.Base(key) != key || strings.ContainsAny(key, `/\`) {
		return "", false
	}
	return filepath.Join(l.dir, key), true
}
