package documents

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"preauth-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturingStorage struct {
	bucketName string
	objectName string
	metadata   map[string]string
	content    string
}

func (s *capturingStorage) UploadObject(_ context.Context, bucketName, objectName string, reader io.Reader, _ int64, _ string, metadata map[string]string) (string, error) {
	s.bucketName = bucketName
	s.objectName = objectName
	s.metadata = metadata
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.content = string(data)
	return objectName, nil
}

func (s *capturingStorage) GetObjectUrlWithExpiryTime(context.Context, string, string, time.Duration) (string, error) {
	return "", nil
}

func TestUploadDocumentProviderNotesCarriesPatientMetadata(t *testing.T) {
	storage := &capturingStorage{}
	usecase := NewDocumentUsecase(storage, "preauth-documents", zap.NewNop())

	objectName, err := usecase.UploadDocument(
		context.Background(),
		constvars.DocumentKindProviderNotes,
		"patient-7",
		"progress-note.pdf",
		"application/pdf",
		strings.NewReader("note body"),
		int64(len("note body")),
	)
	require.NoError(t, err)

	assert.Equal(t, "preauth-documents", storage.bucketName)
	assert.Equal(t, objectName, storage.objectName)
	assert.Equal(t, "note body", storage.content)
	assert.Equal(t, "patient-7", storage.metadata[constvars.RetrievalFilterPatientKey])
	assert.Equal(t, constvars.DocumentKindProviderNotes, storage.metadata["kind"])
}

func TestUploadDocumentProviderNotesRequiresPatient(t *testing.T) {
	usecase := NewDocumentUsecase(&capturingStorage{}, "preauth-documents", zap.NewNop())

	_, err := usecase.UploadDocument(
		context.Background(),
		constvars.DocumentKindProviderNotes,
		"",
		"progress-note.pdf",
		"application/pdf",
		strings.NewReader("x"),
		1,
	)
	require.Error(t, err)
}

func TestUploadDocumentPolicyRejectsPatientScope(t *testing.T) {
	usecase := NewDocumentUsecase(&capturingStorage{}, "preauth-documents", zap.NewNop())

	_, err := usecase.UploadDocument(
		context.Background(),
		constvars.DocumentKindInsurerPolicy,
		"patient-7",
		"policy.pdf",
		"application/pdf",
		strings.NewReader("x"),
		1,
	)
	require.Error(t, err)
}

func TestUploadDocumentPolicyHasNoPatientMetadata(t *testing.T) {
	storage := &capturingStorage{}
	usecase := NewDocumentUsecase(storage, "preauth-documents", zap.NewNop())

	_, err := usecase.UploadDocument(
		context.Background(),
		constvars.DocumentKindInsurerPolicy,
		"",
		"policy.pdf",
		"application/pdf",
		strings.NewReader("criteria"),
		int64(len("criteria")),
	)
	require.NoError(t, err)
	assert.NotContains(t, storage.metadata, constvars.RetrievalFilterPatientKey)
}

func TestUploadDocumentUnknownKind(t *testing.T) {
	usecase := NewDocumentUsecase(&capturingStorage{}, "preauth-documents", zap.NewNop())

	_, err := usecase.UploadDocument(
		context.Background(),
		"lab-results",
		"patient-7",
		"labs.pdf",
		"application/pdf",
		strings.NewReader("x"),
		1,
	)
	require.Error(t, err)
}
