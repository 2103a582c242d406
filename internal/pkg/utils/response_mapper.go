package utils

import (
	"preauth-service/internal/app/models"
	"preauth-service/internal/pkg/dto/responses"
)

func MapCaseToResponse(caseModel *models.Case) *responses.Case {
	response := &responses.Case{
		CaseID:        caseModel.CaseID,
		PatientID:     caseModel.PatientID,
		ProviderID:    caseModel.ProviderID,
		ProcedureCode: caseModel.ProcedureCode,
		Status:        string(caseModel.Status),
		Analysis:      caseModel.Analysis,
		CreatedAt:     caseModel.CreatedAt,
		UpdatedAt:     caseModel.UpdatedAt,
	}
	if caseModel.Decision != nil {
		response.Decision = string(*caseModel.Decision)
	}
	return response
}

func MapCasesToResponses(caseModels []models.Case) []responses.Case {
	result := make([]responses.Case, 0, len(caseModels))
	for i := range caseModels {
		result = append(result, *MapCaseToResponse(&caseModels[i]))
	}
	return result
}
