package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"campushub/internal/storage"
	campus_errors "campushub/pkg/errors"
)

// UploadService hands out presigned S3 PUT URLs. The core never touches file
// bytes; it only stores the retrievable URL a finished upload resolves to.
type UploadService struct {
	storage *storage.Client
}

type PresignInput struct {
	UploaderID  uuid.UUID
	FileName    string
	ContentType string
	FileSize    int64
}

type PresignResult struct {
	UploadURL string            `json:"upload_url"`
	UploadKey string            `json:"upload_key"`
	FileURL   string            `json:"file_url"`
	Headers   map[string]string `json:"headers"`
}

func NewUploadService(storage *storage.Client) *UploadService {
	return &UploadService{storage: storage}
}

func (s *UploadService) CreatePresignedUpload(ctx context.Context, in PresignInput) (PresignResult, error) {
	if s.storage == nil {
		return PresignResult{}, errors.New("s3 storage is not configured")
	}
	if in.UploaderID == uuid.Nil || in.FileName == "" || in.ContentType == "" || in.FileSize <= 0 {
		return PresignResult{}, campus_errors.ErrInvalidInput
	}
	if err := s.storage.ValidateContentType(in.ContentType); err != nil {
		return PresignResult{}, campus_errors.ErrInvalidInput
	}

	key := buildObjectKey(in)
	uploadURL, headers, err := s.storage.PresignPut(ctx, key, in.ContentType, in.FileSize)
	if err != nil {
		return PresignResult{}, err
	}

	return PresignResult{
		UploadURL: uploadURL,
		UploadKey: key,
		FileURL:   s.storage.FileURL(key),
		Headers:   headers,
	}, nil
}

func buildObjectKey(in PresignInput) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s/%s/%d", in.UploaderID, in.FileName, time.Now().UnixNano())))
	ext := strings.ToLower(path.Ext(in.FileName))
	return "uploads/" + in.UploaderID.String() + "/" + hex.EncodeToString(sum[:8]) + ext
}
