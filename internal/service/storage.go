package service

import (
	"context"
	"fmt"
	"najia-backend/internal/apperr"
	"najia-backend/internal/client"
	"path"
	"strings"

	"github.com/google/uuid"
)

// uploads above this size are rejected before touching the store
const maxUploadBytes = 5 << 20

type StorageService interface {
	Upload(ctx context.Context, userID, fileName, contentType string, body []byte) (string, error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

type storageServiceImpl struct {
	store client.ObjectStore
}

func NewStorageService(store client.ObjectStore) StorageService {
	return &storageServiceImpl{
		store: store,
	}
}

func (s *storageServiceImpl) Upload(ctx context.Context, userID, fileName, contentType string, body []byte) (string, error) {
	if len(body) == 0 {
		return "", apperr.Validation("file body is empty")
	}
	if len(body) > maxUploadBytes {
		return "", apperr.Validation("file exceeds maximum size of %d bytes", maxUploadBytes)
	}

	key := objectKey(userID, fileName)
	if err := s.store.Upload(ctx, key, body, contentType); err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}
	return key, nil
}

func (s *storageServiceImpl) DownloadURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", apperr.Validation("key is required")
	}

	url, err := s.store.PresignGet(key)
	if err != nil {
		return "", fmt.Errorf("presign object: %w", err)
	}
	return url, nil
}

// objectKey namespaces uploads per user and randomises the name so
// repeated uploads of the same file never collide.
func objectKey(userID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("uploads/%s/%s%s", userID, uuid.NewString(), ext)
}
