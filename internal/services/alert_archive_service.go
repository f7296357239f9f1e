package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"buildstock/internal/models"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// AlertArchiveService keeps a JSON copy of every dispatched alert in object
// storage. Archiving is best-effort, like dispatch itself.
type AlertArchiveService interface {
	ArchiveAlert(ctx context.Context, alert *models.AlertRecord) error
	EnsureBucketExists(ctx context.Context) error
}

type alertArchive struct {
	client *minio.Client
	bucket string
}

func NewAlertArchiveService(endpoint, accessKey, secretKey string, useSSL bool, bucket string) (AlertArchiveService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &alertArchive{client: client, bucket: bucket}, nil
}

func (a *alertArchive) ArchiveAlert(ctx context.Context, alert *models.AlertRecord) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return err
	}

	objectName := fmt.Sprintf("alerts/%s/%s-%s.json",
		alert.Timestamp.UTC().Format("2006/01/02"),
		alert.Warehouse.ID.String(),
		alert.Timestamp.UTC().Format("150405"))

	_, err = a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	return err
}

func (a *alertArchive) EnsureBucketExists(ctx context.Context) error {
	found, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return err
	}
	if !found {
		return a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{})
	}
	return nil
}
