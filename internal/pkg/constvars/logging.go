package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingCaseIDKey        = "case_id"
	LoggingPatientIDKey     = "patient_id"
	LoggingProviderIDKey    = "provider_id"
	LoggingProcedureCodeKey = "procedure_code"
	LoggingStatusKey        = "status"
	LoggingTopicKey         = "topic"
	LoggingQueueKey         = "queue"
	LoggingKnowledgeBaseKey = "knowledge_base_id"
	LoggingRedisKey         = "redis_key"
	LoggingLockValueKey     = "lock_value"
	LoggingRawResponseKey   = "raw_response"
	LoggingMethodKey        = "method"
	LoggingEndpointKey      = "endpoint"
	LoggingRemoteAddrKey    = "remote_addr"
	LoggingUserAgentKey     = "user_agent"
	LoggingQueryKey         = "query"
	LoggingStatusCodeKey    = "status_code"
	LoggingDurationKey      = "duration"
	LoggingSuccessKey       = "success"
	LoggingClientIDKey      = "client_id"
	LoggingObjectNameKey    = "object_name"
	LoggingAttemptKey       = "attempt"
	LoggingEvidenceKey      = "evidence"
)
