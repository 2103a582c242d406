package documents

import (
	"context"
	"errors"
	"io"

	"preauth-service/internal/app/contracts"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/exceptions"
	"preauth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type documentUsecase struct {
	Storage    contracts.Storage
	BucketName string
	Log        *zap.Logger
}

func NewDocumentUsecase(storage contracts.Storage, bucketName string, logger *zap.Logger) contracts.DocumentUsecase {
	return &documentUsecase{
		Storage:    storage,
		BucketName: bucketName,
		Log:        logger,
	}
}

// UploadDocument stores an evidence document with the attributes the ingestion
// pipeline filters on. Provider notes must carry a patient identifier;
// insurer policy documents must not, since policy passages are shared across
// patients.
func (uc *documentUsecase) UploadDocument(ctx context.Context, kind, patientID, filename, contentType string, reader io.Reader, size int64) (string, error) {
	switch kind {
	case constvars.DocumentKindProviderNotes:
		if patientID == "" {
			return "", exceptions.ErrInputValidation(errors.New("patient_id is required for provider notes"))
		}
	case constvars.DocumentKindInsurerPolicy:
		if patientID != "" {
			return "", exceptions.ErrInputValidation(errors.New("patient_id must be empty for insurer policy documents"))
		}
	default:
		return "", exceptions.ErrInputValidation(errors.New("unknown document kind: " + kind))
	}

	metadata := map[string]string{"kind": kind}
	if patientID != "" {
		metadata[constvars.RetrievalFilterPatientKey] = patientID
	}

	objectName := utils.GenerateObjectName(kind, patientID, filename)
	uploaded, err := uc.Storage.UploadObject(ctx, uc.BucketName, objectName, reader, size, contentType, metadata)
	if err != nil {
		return "", err
	}

	uc.Log.Info("documentUsecase.UploadDocument stored",
		zap.String(constvars.LoggingObjectNameKey, uploaded),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return uploaded, nil
}
