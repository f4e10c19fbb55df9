// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/avpetrescu/catalog-admin/internal/config"
)

// StorageService persists uploaded image bytes under their original
// filename and hands back the public URL recorded in the product row.
// Local disk is the default; S3 is used when AWS credentials are
// configured.
type StorageService struct {
	s3Client *s3.S3
	cfg      config.StorageConfig
}

type SaveResult struct {
	URL  string `json:"url"`
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

func NewStorageService(cfg config.StorageConfig) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		return &StorageService{cfg: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		cfg:      cfg,
	}, nil
}

// SaveImage stores data verbatim under the upload's original filename.
// Same-name uploads overwrite each other; the overwrite is logged as a
// warning but not prevented. Callers get the same URL either way.
func (s *StorageService) SaveImage(filename string, data []byte) (*SaveResult, error) {
	if filename == "" {
		return nil, fmt.Errorf("image filename is empty")
	}
	// Strip any client-supplied directory components.
	filename = filepath.Base(filename)

	if s.cfg.MaxUploadSize > 0 && int64(len(data)) > s.cfg.MaxUploadSize {
		return nil, fmt.Errorf("image size %d bytes exceeds maximum allowed size %d bytes",
			len(data), s.cfg.MaxUploadSize)
	}

	if s.s3Client != nil {
		return s.saveToS3(filename, data)
	}
	return s.saveToLocal(filename, data)
}

func (s *StorageService) saveToLocal(filename string, data []byte) (*SaveResult, error) {
	if err := os.MkdirAll(s.cfg.ImageDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	dest := filepath.Join(s.cfg.ImageDir, filename)
	if _, err := os.Stat(dest); err == nil {
		logrus.WithField("file", dest).Warn("Overwriting existing image file")
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write image file: %w", err)
	}

	return &SaveResult{
		URL:  path.Join(s.cfg.PublicPath, filename),
		Key:  filename,
		Size: int64(len(data)),
	}, nil
}

func (s *StorageService) saveToS3(filename string, data []byte) (*SaveResult, error) {
	key := path.Join("images", filename)

	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &SaveResult{
		URL:  s.s3URL(key),
		Key:  key,
		Size: int64(len(data)),
	}, nil
}

func (s *StorageService) DeleteImage(key string) error {
	if s.s3Client == nil {
		return os.Remove(filepath.Join(s.cfg.ImageDir, filepath.Base(key)))
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

func (s *StorageService) s3URL(key string) string {
	if s.cfg.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.cfg.AWS.CloudFrontURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.cfg.AWS.S3Bucket, s.cfg.AWS.Region, key)
}
