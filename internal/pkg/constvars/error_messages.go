package constvars

// Validation messages for clients, mapped by validator tag.
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"oneof":    "must be one of: %s",
	"decision": "must be APPROVED or DENIED",
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientCaseNotFound                  = "case not found"
	ErrClientCaseNotAwaitingDecision       = "case is not awaiting a decision"
	ErrClientCaseAlreadyDecided            = "a decision has already been submitted for this case"
	ErrClientCaseTerminal                  = "case has reached a final decision and cannot be re-analyzed"
	ErrClientEvidenceUnavailable           = "evidence sources are temporarily unavailable, please retry"
	ErrClientAnalysisUnavailable           = "analysis service is temporarily unavailable, please retry"
	ErrClientAnalysisFailed                = "analysis produced an unusable result, please retry"
	ErrClientDocumentTooLarge              = "document exceeds the maximum upload size"
)

// Error messages for developers
const (
	ErrDevValidationFailed   = "request validation failed"
	ErrDevCannotParseJSON    = "cannot parse JSON"
	ErrDevCannotMarshalJSON  = "cannot marshal JSON"
	ErrDevCreateHTTPRequest  = "failed to create HTTP request"
	ErrDevSendHTTPRequest    = "failed to send HTTP request"
	ErrDevServerProcess      = "internal server error"
	ErrDevDeadlineExceeded   = "deadline exceeded while processing request"
	ErrDevMissingRequestID   = "request ID not found in request context"
	ErrDevURLParamValidation = "invalid URL parameter: %s"

	// Auth
	ErrDevAuthTokenMissing          = "authorization token is missing"
	ErrDevAuthTokenInvalidOrExpired = "authorization token is invalid or expired"
	ErrDevAuthRoleNotAllowed        = "authenticated role is not allowed for this operation"

	// Case lifecycle
	ErrDevCaseNotFound             = "case document not found"
	ErrDevCaseInvalidState         = "case status does not permit this transition"
	ErrDevCaseAlreadyDecided       = "case decision is already set"
	ErrDevCaseConcurrentUpdate     = "case was modified concurrently, expected status did not match"
	ErrDevCaseLockNotAcquired      = "could not acquire per-case lock"
	ErrDevCaseUnknownStatus        = "unknown case status value: %s"
	ErrDevCaseUnknownDecision      = "unknown decision value: %s"
	ErrDevCaseReanalysisForbidden  = "re-analysis is forbidden once a decision exists"
	ErrDevCaseAnalysisNotRestarted = "analysis failed, case left at prior status"

	// Retrieval
	ErrDevRetrievalUnavailable  = "both knowledge-base retrievals failed"
	ErrDevPartialRetrieval      = "knowledge-base retrieval failed for side: %s"
	ErrDevRetrievalBadResponse  = "knowledge-base retrieval returned an unusable response"
	ErrDevRetrievalFilterBypass = "retrieved passage violates the patient attribute filter"

	// Reasoning
	ErrDevReasoningUnavailable = "reasoning service invocation failed"
	ErrDevReasoningTimeout     = "reasoning service invocation timed out"
	ErrDevMalformedVerdict     = "reasoning response did not contain a well-formed verdict"

	// Mongo
	ErrDevDBFailedToFindDocument     = "failed to find document in database"
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document in database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate database documents"

	// Redis
	ErrDevRedisGetNoData  = "failed to get data from redis with key: %s"
	ErrDevRedisSetData    = "failed to set data to redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"
	ErrDevRedisUnlock     = "failed to release redis lock"

	// Minio
	ErrDevMinioFailedToCreateObject = "failed to create object in bucket: %s"
	ErrDevMinioFailedToPresignURL   = "failed to presign object URL in bucket: %s"

	// RabbitMQ
	ErrDevRabbitMQPublish = "failed to publish message to queue: %s"

	// Multipart
	ErrDevCannotParseMultipartForm = "cannot parse multipart form"
)
