package controllers

import (
	"context"
	"net/http"
	"time"

	"preauth-service/internal/app/contracts"
	"preauth-service/internal/app/models"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/dto/requests"
	"preauth-service/internal/pkg/exceptions"
	"preauth-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type CaseController struct {
	Log            *zap.Logger
	CaseUsecase    contracts.CaseUsecase
	requestTimeout time.Duration
}

func NewCaseController(logger *zap.Logger, caseUsecase contracts.CaseUsecase, requestTimeoutInSeconds int) *CaseController {
	return &CaseController{
		Log:            logger,
		CaseUsecase:    caseUsecase,
		requestTimeout: time.Duration(requestTimeoutInSeconds) * time.Second,
	}
}

func (ctrl *CaseController) CreateCase(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CaseController.CreateCase requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("CaseController.CreateCase called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateCase)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("CaseController.CreateCase error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("CaseController.CreateCase validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout)
	defer cancel()

	response, err := ctrl.CaseUsecase.CreateCase(ctx, request)
	if err != nil {
		ctrl.Log.Error("CaseController.CreateCase error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("CaseController.CreateCase succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, response.CaseID),
		zap.String(constvars.LoggingStatusKey, response.Status),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateCaseSuccessMessage, response)
}

func (ctrl *CaseController) GetCaseByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CaseController.GetCaseByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	caseID := chi.URLParam(r, constvars.URLParamCaseID)
	if caseID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamCaseID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout)
	defer cancel()

	response, err := ctrl.CaseUsecase.GetCase(ctx, caseID)
	if err != nil {
		ctrl.Log.Error("CaseController.GetCaseByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, caseID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCaseSuccessMessage, response)
}

// ListCases filters by patient_id or status, exactly one of which must be
// present.
func (ctrl *CaseController) ListCases(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CaseController.ListCases requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	patientID := r.URL.Query().Get(constvars.QueryParamPatientID)
	status := r.URL.Query().Get(constvars.QueryParamStatus)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout)
	defer cancel()

	switch {
	case patientID != "" && status == "":
		response, err := ctrl.CaseUsecase.ListCasesByPatient(ctx, patientID)
		if err != nil {
			ctrl.Log.Error("CaseController.ListCases error from usecase",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(ctrl.Log, w, err)
			return
		}
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListCasesSuccessMessage, response)
	case status != "" && patientID == "":
		response, err := ctrl.CaseUsecase.ListCasesByStatus(ctx, models.CaseStatus(status))
		if err != nil {
			ctrl.Log.Error("CaseController.ListCases error from usecase",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(ctrl.Log, w, err)
			return
		}
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListCasesSuccessMessage, response)
	default:
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.QueryParamPatientID))
	}
}

func (ctrl *CaseController) ReanalyzeCase(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CaseController.ReanalyzeCase requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	caseID := chi.URLParam(r, constvars.URLParamCaseID)
	if caseID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamCaseID))
		return
	}
	ctrl.Log.Info("CaseController.ReanalyzeCase called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, caseID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout)
	defer cancel()

	response, err := ctrl.CaseUsecase.ReanalyzeCase(ctx, caseID)
	if err != nil {
		ctrl.Log.Error("CaseController.ReanalyzeCase error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, caseID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("CaseController.ReanalyzeCase succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, caseID),
		zap.String(constvars.LoggingStatusKey, response.Status),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReanalyzeCaseSuccessMessage, response)
}

func (ctrl *CaseController) SubmitDecision(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CaseController.SubmitDecision requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	caseID := chi.URLParam(r, constvars.URLParamCaseID)
	if caseID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamCaseID))
		return
	}

	request := new(requests.SubmitDecision)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("CaseController.SubmitDecision error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("CaseController.SubmitDecision validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout)
	defer cancel()

	response, err := ctrl.CaseUsecase.SubmitDecision(ctx, caseID, request)
	if err != nil {
		ctrl.Log.Error("CaseController.SubmitDecision error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, caseID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("CaseController.SubmitDecision succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, caseID),
		zap.String(constvars.LoggingStatusKey, response.Status),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitDecisionSuccessMessage, response)
}
