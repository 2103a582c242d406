package contracts

import (
	"context"
	"io"
	"time"
)

type Storage interface {
	UploadObject(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, contentType string, metadata map[string]string) (string, error)
	GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error)
}

type DocumentUsecase interface {
	// UploadDocument stores a new evidence document in object storage with
	// patient and kind metadata so the knowledge-base ingestion pipeline can
	// index it with the right attribute filter.
	UploadDocument(ctx context.Context, kind, patientID, filename, contentType string, reader io.Reader, size int64) (string, error)
}
