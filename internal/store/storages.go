package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
)

// Storages groups every persistence dependency of the services.
type Storages struct {
	UserRepository UserRepository
	PictureStorage PictureStorage

	db *DB
}

// NewStorages connects to the database selected by cfg.DB and picks the
// picture store: S3 when a bucket is configured, the local directory
// otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	pictureStorage, err := newPictureStorage(ctx, cfg, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		PictureStorage: pictureStorage,
		db:             db,
	}, nil
}

func newPictureStorage(ctx context.Context, cfg config.Storage, log *logger.Logger) (PictureStorage, error) {
	if cfg.Blob.Bucket != "" {
		return NewS3PictureStorage(ctx, cfg.Blob, log)
	}

	return NewLocalPictureStorage(cfg.Files.PicturesDir, cfg.Files.PublicURL, log)
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
