package evidence

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"preauth-service/internal/app/config"
	"preauth-service/internal/app/contracts"
	"preauth-service/internal/app/models"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/dto/requests"
	"preauth-service/internal/pkg/dto/responses"
	"preauth-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type retrieverHttpClient struct {
	BaseUrl    string
	MaxResults int
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewRetrieverHttpClient(retrieverConfig config.Retriever, logger *zap.Logger) contracts.RetrieverClient {
	return &retrieverHttpClient{
		BaseUrl:    retrieverConfig.BaseUrl,
		MaxResults: retrieverConfig.MaxResults,
		HTTPClient: &http.Client{
			Timeout: time.Duration(retrieverConfig.TimeoutInSeconds) * time.Second,
		},
		Log: logger,
	}
}

func (c *retrieverHttpClient) Query(ctx context.Context, knowledgeBaseID, query string, filter *models.AttributeFilter) ([]models.EvidencePassage, error) {
	requestJSON, err := json.Marshal(&requests.RetrievalQuery{
		Query:      query,
		MaxResults: c.MaxResults,
		Filter:     filter,
	})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	url := fmt.Sprintf("%s/knowledge-bases/%s/retrieve", c.BaseUrl, knowledgeBaseID)
	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrRetrievalBadResponse(fmt.Errorf("retrieval service returned status %d", resp.StatusCode))
	}

	result := new(responses.RetrievalResult)
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, exceptions.ErrRetrievalBadResponse(err)
	}

	passages := make([]models.EvidencePassage, 0, len(result.Passages))
	for _, passage := range result.Passages {
		if filter != nil && !matchesFilter(passage.Metadata, filter) {
			c.Log.Warn("retrieverHttpClient.Query dropped passage outside metadata filter",
				zap.String(constvars.LoggingKnowledgeBaseKey, knowledgeBaseID),
				zap.String("filter_key", filter.Key),
			)
			continue
		}
		passages = append(passages, models.EvidencePassage{
			Text:   passage.Text,
			Source: passage.Source,
			Score:  passage.Score,
		})
	}

	c.Log.Debug("retrieverHttpClient.Query completed",
		zap.String(constvars.LoggingKnowledgeBaseKey, knowledgeBaseID),
		zap.String(constvars.LoggingQueryKey, query),
		zap.Int("passages", len(passages)),
	)
	return passages, nil
}

// matchesFilter re-checks the service-side metadata predicate on each returned
// passage. A passage with no metadata for the filtered key is rejected: for
// patient-scoped corpora an unlabeled document must never reach context
// assembly.
func matchesFilter(metadata map[string]string, filter *models.AttributeFilter) bool {
	value, ok := metadata[filter.Key]
	return ok && value == filter.Value
}
