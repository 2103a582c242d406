package responses

// RetrievalResult is the retrieval service's answer to one knowledge-base
// query. Metadata carries the document attributes the corpus was indexed
// with, including the patient scope for clinical notes.
type RetrievalResult struct {
	Passages []RetrievedPassage `json:"passages"`
}

type RetrievedPassage struct {
	Text     string            `json:"text"`
	Source   string            `json:"source"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
