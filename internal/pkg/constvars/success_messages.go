package constvars

const (
	CreateCaseSuccessMessage     = "Successfully created and analyzed pre-authorization case"
	GetCaseSuccessMessage        = "Successfully retrieved case"
	ListCasesSuccessMessage      = "Successfully retrieved cases"
	SubmitDecisionSuccessMessage = "Successfully submitted decision"
	ReanalyzeCaseSuccessMessage  = "Successfully re-analyzed case"
	UploadDocumentSuccessMessage = "Successfully uploaded evidence document"
)
