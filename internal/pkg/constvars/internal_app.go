package constvars

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY           contextKey = "requestID"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY contextKey = "isClientRequestID"
	CONTEXT_AUTH_ROLE_KEY            contextKey = "authRole"
	CONTEXT_AUTH_SUBJECT_KEY         contextKey = "authSubject"
)

const (
	HeaderXRequestID    = "X-Request-Id"
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
)

const (
	MongoCollectionCases = "cases"
)

const (
	URLParamCaseID      = "caseID"
	QueryParamPatientID = "patient_id"
	QueryParamStatus    = "status"
	FormFieldDocument   = "document"
	FormFieldKind       = "kind"
	FormFieldPatientID  = "patient_id"
)

// Notification topics. Every status change notifies the owning provider's
// topic; cases that become ready for an insurer decision additionally notify
// the shared insurer queue.
const (
	TopicInsurerQueue       = "insurer-queue"
	TopicProviderFormat     = "provider-%s"
	QueueCaseEvents         = "preauth_case_events"
	EventTypeCaseUpdated    = "case.updated"
	EventTypeCaseDecided    = "case.decided"
	WebSocketTopicsQueryKey = "topics"

	WebSocketActionSubscribe   = "subscribe"
	WebSocketActionUnsubscribe = "unsubscribe"
)

// Knowledge-base query templates, filled with the procedure code or patient
// identifier at retrieval time.
const (
	InsurerPolicyQueryFormat  = "What are the medical necessity criteria for %s?"
	ProviderNotesQueryFormat  = "Clinical notes for patient %s related to %s."
	RetrievalFilterPatientKey = "patient_id"
)

const (
	EvidenceOriginInsurerPolicy = "insurer-policy"
	EvidenceOriginProviderNotes = "provider-notes"
)

// DefaultSystemInstruction is the adjudication prompt sent to the reasoning
// model when no override is configured. The outcome values and field names it
// dictates are what the verdict parser validates against.
const DefaultSystemInstruction = `You are a medical pre-authorization adjudicator. Compare the provider clinical notes against the insurer policy criteria and respond with a single JSON object and nothing else: {"outcome": "APPROVED_READY" | "MISSING_INFORMATION" | "AI_DENIED", "rationale": "<why>", "missing_items": ["<item>", ...], "criteria": {"<criterion>": {"met": true|false, "evidence": "<quote from notes>", "policy_reference": "<policy section>"}}}. Use APPROVED_READY when every policy criterion is documented as met, MISSING_INFORMATION when documentation is absent or inconclusive (missing_items must list what is needed), and AI_DENIED when the notes show a criterion is not met.`

const (
	RedisKeyCaseLockFormat    = "preauth:case-lock:%s"
	RedisKeyPolicyCacheFormat = "preauth:policy-cache:%s"
)

const (
	AuthRoleInsurer  = "insurer"
	AuthRoleProvider = "provider"
)

const (
	DocumentKindProviderNotes = "provider-notes"
	DocumentKindInsurerPolicy = "insurer-policy"
)
