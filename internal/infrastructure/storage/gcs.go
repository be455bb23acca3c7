// Package storage uploads employee pictures to Google Cloud Storage.
package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/refdata-console/internal/application"
	"github.com/oksasatya/refdata-console/pkg/helpers"
)

const employeePrefix = "employees"

type GCSImageStore struct {
	client *gcs.Client
	bucket string
	logger *logrus.Logger
}

var _ application.ImageStore = (*GCSImageStore)(nil)

func NewGCSImageStore(client *gcs.Client, bucket string, logger *logrus.Logger) *GCSImageStore {
	return &GCSImageStore{client: client, bucket: bucket, logger: logger}
}

// UploadEmployeeImage stores r under employees/<uuid><ext> and returns its public URL.
func (s *GCSImageStore) UploadEmployeeImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	object := helpers.ObjectPath(employeePrefix, filename)
	url, err := helpers.UploadObject(ctx, s.client, s.bucket, object, contentType, r)
	if err != nil {
		helpers.LogError(s.logger, "employee image upload failed", err, logrus.Fields{"bucket": s.bucket, "object": object})
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	helpers.LogInfo(s.logger, "employee image uploaded", logrus.Fields{"object": object})
	return url, nil
}
