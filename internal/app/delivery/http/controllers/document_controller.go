package controllers

import (
	"context"
	"net/http"
	"time"

	"preauth-service/internal/app/contracts"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/exceptions"
	"preauth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type DocumentController struct {
	Log             *zap.Logger
	DocumentUsecase contracts.DocumentUsecase
	maxUploadBytes  int64
	requestTimeout  time.Duration
}

func NewDocumentController(logger *zap.Logger, documentUsecase contracts.DocumentUsecase, maxUploadSizeInMB int64, requestTimeoutInSeconds int) *DocumentController {
	return &DocumentController{
		Log:             logger,
		DocumentUsecase: documentUsecase,
		maxUploadBytes:  maxUploadSizeInMB << 20,
		requestTimeout:  time.Duration(requestTimeoutInSeconds) * time.Second,
	}
}

// UploadDocument accepts a multipart form with the document file, its kind and
// an optional patient_id.
func (ctrl *DocumentController) UploadDocument(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DocumentController.UploadDocument requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("DocumentController.UploadDocument called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	r.Body = http.MaxBytesReader(w, r.Body, ctrl.maxUploadBytes)
	if err := r.ParseMultipartForm(ctrl.maxUploadBytes); err != nil {
		ctrl.Log.Error("DocumentController.UploadDocument error parsing form",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, fileHeader, err := r.FormFile(constvars.FormFieldDocument)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	kind := r.FormValue(constvars.FormFieldKind)
	patientID := r.FormValue(constvars.FormFieldPatientID)
	contentType := fileHeader.Header.Get(constvars.HeaderContentType)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout)
	defer cancel()

	objectName, err := ctrl.DocumentUsecase.UploadDocument(ctx, kind, patientID, fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		ctrl.Log.Error("DocumentController.UploadDocument error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DocumentController.UploadDocument succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.UploadDocumentSuccessMessage, map[string]string{
		"object_name": objectName,
	})
}
