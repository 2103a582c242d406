package requests

type CreateCase struct {
	PatientID     string `json:"patient_id" validate:"required,min=1,max=64"`
	ProviderID    string `json:"provider_id" validate:"required,min=1,max=64"`
	ProcedureCode string `json:"procedure_code" validate:"required,min=1,max=128"`
}

type SubmitDecision struct {
	Decision string `json:"decision" validate:"required,decision"`
}
