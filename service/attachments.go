package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/TakeshiImakurusu/contract-management-system/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// AttachmentStore serves contract attachments (signed contracts,
// quotes) from a MINIO bucket. Objects are keyed
// <contract id>/<attachment name>, matching the names in
// ContractExtras.
type AttachmentStore struct {
	client *minio.Client
	bucket string
	config *config.AttachmentsConfig
}

func NewAttachmentStore(cfg *config.AttachmentsConfig) (*AttachmentStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &AttachmentStore{
		client: client,
		bucket: cfg.Bucket,
		config: cfg,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *AttachmentStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func objectName(contractID, name string) string {
	return fmt.Sprintf("%s/%s", contractID, name)
}

// Upload stores an attachment object for a contract
func (s *AttachmentStore) Upload(ctx context.Context, contractID, name string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName(contractID, name), reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload attachment: %w", err)
	}

	return nil
}

// PresignedURL generates a download URL for an attachment with the
// configured expiry
func (s *AttachmentStore) PresignedURL(ctx context.Context, contractID, name string) (string, error) {
	expiry := time.Duration(s.config.ExpireDays) * 24 * time.Hour
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName(contractID, name), expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}

// Delete removes an attachment object
func (s *AttachmentStore) Delete(ctx context.Context, contractID, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectName(contractID, name), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	return nil
}
