package requests

import "preauth-service/internal/app/models"

// RetrievalQuery is the body posted to the retrieval service for one
// knowledge-base lookup.
type RetrievalQuery struct {
	Query      string                  `json:"query"`
	MaxResults int                     `json:"max_results"`
	Filter     *models.AttributeFilter `json:"filter,omitempty"`
}
