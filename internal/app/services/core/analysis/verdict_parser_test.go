package analysis

import (
	"testing"

	"preauth-service/internal/app/models"
	"preauth-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerdictPlainObject(t *testing.T) {
	raw := `{"outcome": "APPROVED_READY", "rationale": "All criteria met.", "criteria": {"conservative_therapy": {"met": true, "evidence": "8 weeks PT documented", "policy_reference": "section 4.2"}}}`

	verdict, err := ParseVerdict(raw)
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusApprovedReady, verdict.Outcome)
	assert.Equal(t, "All criteria met.", verdict.Rationale)
	require.Contains(t, verdict.Criteria, "conservative_therapy")
	assert.True(t, verdict.Criteria["conservative_therapy"].Met)
	assert.Equal(t, "section 4.2", verdict.Criteria["conservative_therapy"].PolicyReference)
}

func TestParseVerdictWrappedInProseAndCodeFence(t *testing.T) {
	raw := "Here is my assessment of the case:\n```json\n" +
		`{"outcome": "AI_DENIED", "rationale": "No conservative therapy documented."}` +
		"\n```\nLet me know if you need anything else."

	verdict, err := ParseVerdict(raw)
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusAIDenied, verdict.Outcome)
}

func TestParseVerdictMissingInformationRequiresItems(t *testing.T) {
	valid := `{"outcome": "MISSING_INFORMATION", "rationale": "Imaging report absent.", "missing_items": ["radiology report"]}`
	verdict, err := ParseVerdict(valid)
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusMissingInformation, verdict.Outcome)
	assert.Equal(t, []string{"radiology report"}, verdict.MissingItems)

	invalid := `{"outcome": "MISSING_INFORMATION", "rationale": "Imaging report absent."}`
	_, err = ParseVerdict(invalid)
	require.Error(t, err)
}

func TestParseVerdictRejectsUnknownOutcome(t *testing.T) {
	for _, raw := range []string{
		`{"outcome": "APPROVED", "rationale": "done"}`,
		`{"outcome": "DENIED", "rationale": "done"}`,
		`{"outcome": "PENDING", "rationale": "done"}`,
		`{"outcome": "maybe", "rationale": "done"}`,
		`{"outcome": "", "rationale": "done"}`,
	} {
		_, err := ParseVerdict(raw)
		require.Error(t, err, "outcome should be rejected: %s", raw)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
	}
}

func TestParseVerdictNormalizesOutcomeCase(t *testing.T) {
	raw := `{"outcome": "approved_ready", "rationale": "criteria satisfied"}`

	verdict, err := ParseVerdict(raw)
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusApprovedReady, verdict.Outcome)
}

func TestParseVerdictRejectsEmptyRationale(t *testing.T) {
	_, err := ParseVerdict(`{"outcome": "APPROVED_READY", "rationale": "  "}`)
	require.Error(t, err)
}

func TestParseVerdictNoJSONObject(t *testing.T) {
	for _, raw := range []string{
		"I cannot produce a verdict for this case.",
		"",
		`{"outcome": "APPROVED_READY", "rationale": "truncated`,
	} {
		_, err := ParseVerdict(raw)
		require.Error(t, err, "raw: %q", raw)
	}
}

func TestParseVerdictBracesInsideStringsDoNotDerailScan(t *testing.T) {
	raw := `{"outcome": "APPROVED_READY", "rationale": "policy section {4.2} satisfied, quote: \"ok\""}`

	verdict, err := ParseVerdict(raw)
	require.NoError(t, err)
	assert.Contains(t, verdict.Rationale, "{4.2}")
}

func TestParseVerdictTakesFirstObjectWhenSeveralPresent(t *testing.T) {
	raw := `{"outcome": "AI_DENIED", "rationale": "criteria unmet"} {"outcome": "APPROVED_READY", "rationale": "ignore me"}`

	verdict, err := ParseVerdict(raw)
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusAIDenied, verdict.Outcome)
}
