package config

type InternalConfig struct {
	App          App
	JWT          JWT
	Retriever    Retriever
	Reasoning    Reasoning
	Notification Notification
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Timezone                   string
	EndpointPrefix             string
	MaxRequests                int
	ShutdownTimeout            int
	RequestTimeoutInSeconds    int
	DocumentMaxUploadSizeInMB  int64
	CaseLockExpiryInSeconds    int
	PolicyCacheExpiryInMinutes int
}

type JWT struct {
	Secret        string
	ExpTimeInHour int
}

type Retriever struct {
	BaseUrl          string
	InsurerKBID      string
	ProviderKBID     string
	MaxResults       int
	TimeoutInSeconds int
}

type Reasoning struct {
	BaseUrl              string
	ModelID              string
	SystemInstruction    string
	MaxContextChars      int
	MaxRetries           int
	TimeoutInSeconds     int
	InvocationsPerSecond float64
}

type Notification struct {
	ClientQueueSize int
	CaseEventQueue  string
}
