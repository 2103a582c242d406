package analysis

import (
	"errors"
	"strings"

	"preauth-service/internal/app/models"
	"preauth-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// rawVerdict mirrors the JSON object the reasoning prompt asks the model to
// emit. Outcome is kept as a plain string until validated.
type rawVerdict struct {
	Outcome      string                             `json:"outcome"`
	Rationale    string                             `json:"rationale"`
	MissingItems []string                           `json:"missing_items"`
	Criteria     map[string]models.CriterionFinding `json:"criteria"`
}

// ParseVerdict extracts a verdict from the reasoning model's raw response.
// Models wrap their JSON in prose and code fences unpredictably, so the parser
// scans for the first brace-balanced object in the text rather than decoding
// the whole response. Anything that does not yield a valid verdict is a
// malformed-verdict error; callers must leave the case untouched on that path.
func ParseVerdict(raw string) (*models.Verdict, error) {
	candidate, err := firstJSONObject(raw)
	if err != nil {
		return nil, exceptions.ErrMalformedVerdict(err)
	}

	var parsed rawVerdict
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, exceptions.ErrMalformedVerdict(err)
	}

	outcome := models.CaseStatus(strings.ToUpper(strings.TrimSpace(parsed.Outcome)))
	if !outcome.IsAnalysisOutcome() {
		return nil, exceptions.ErrMalformedVerdict(errors.New("outcome is not a recognized analysis outcome: " + parsed.Outcome))
	}
	if strings.TrimSpace(parsed.Rationale) == "" {
		return nil, exceptions.ErrMalformedVerdict(errors.New("rationale is empty"))
	}
	if outcome == models.CaseStatusMissingInformation && len(parsed.MissingItems) == 0 {
		return nil, exceptions.ErrMalformedVerdict(errors.New("missing_items is empty for a missing-information outcome"))
	}

	return &models.Verdict{
		Outcome:      outcome,
		Rationale:    parsed.Rationale,
		MissingItems: parsed.MissingItems,
		Criteria:     parsed.Criteria,
	}, nil
}

// firstJSONObject returns the first brace-balanced object in s. Braces inside
// JSON strings are skipped so rationale text containing "{" cannot derail the
// scan.
func firstJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", errors.New("response contains no JSON object")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", errors.New("response contains an unterminated JSON object")
}
