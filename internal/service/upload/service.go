package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/healthmaster/healthmaster-go/internal/config"
	"github.com/healthmaster/healthmaster-go/internal/store"
	"github.com/healthmaster/healthmaster-go/pkg/apperror"
	"github.com/healthmaster/healthmaster-go/pkg/logger"
)

// Service uploads binary assets to the store's file buckets and
// resolves their public view URLs. Failed uploads are never resumed;
// the caller retries in full.
type Service struct {
	store  store.FileStore
	cfg    config.StoreConfig
	logger *logger.Logger
}

func NewService(st store.FileStore, cfg config.StoreConfig, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:  st,
		cfg:    cfg,
		logger: log.WithComponent("upload"),
	}
}

// Image uploads image content to the general storage bucket under a
// generated name and returns its view URL.
func (s *Service) Image(ctx context.Context, content io.Reader) (string, error) {
	name := fmt.Sprintf("image_%d.jpg", time.Now().UnixMilli())
	return s.upload(ctx, s.cfg.Buckets.Storage, name, content)
}

// ImageFile is Image for a local file path; opening the file is part
// of the upload and fails with the same error kind.
func (s *Service) ImageFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", apperror.New(apperror.Upload, "upload.image", s.cfg.Buckets.Storage, "failed to read local image", err)
	}
	defer f.Close()
	return s.Image(ctx, f)
}

// Avatar uploads profile-avatar content to the avatars bucket.
func (s *Service) Avatar(ctx context.Context, content io.Reader) (string, error) {
	name := fmt.Sprintf("avatar_%d.jpg", time.Now().UnixMilli())
	return s.upload(ctx, s.cfg.Buckets.Avatars, name, content)
}

// Images uploads a batch to the storage bucket and returns a
// key-to-URL map ("avatar1", "avatar2", ...) in input order. Uploads
// run sequentially; the first failure aborts the batch.
func (s *Service) Images(ctx context.Context, contents []io.Reader) (map[string]string, error) {
	urls := make(map[string]string, len(contents))
	for i, content := range contents {
		name := fmt.Sprintf("avatar_%d.png", i+1)
		url, err := s.upload(ctx, s.cfg.Buckets.Storage, name, content)
		if err != nil {
			return nil, err
		}
		urls[fmt.Sprintf("avatar%d", i+1)] = url
	}
	return urls, nil
}

func (s *Service) upload(ctx context.Context, bucketID, name string, content io.Reader) (string, error) {
	file, err := s.store.CreateFile(ctx, bucketID, uuid.NewString(), name, content)
	if err != nil {
		s.logger.Error(err, "upload failed", "bucket", bucketID, "name", name)
		return "", err
	}
	return s.store.FileViewURL(bucketID, file.ID), nil
}
