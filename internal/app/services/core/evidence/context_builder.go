package evidence

import (
	"fmt"
	"sort"
	"strings"

	"preauth-service/internal/app/models"
	"preauth-service/internal/pkg/constvars"
)

const (
	insurerSectionHeader  = "=== INSURER POLICY CRITERIA ==="
	providerSectionHeader = "=== PROVIDER CLINICAL NOTES ==="
)

// BuildContext renders the gathered passages into the prompt context for the
// reasoning service. Passages keep their retrieval order inside each section.
// When the rendered context would exceed maxChars, whole passages are dropped
// lowest relevance score first, regardless of section, until it fits. Headers
// are always emitted so the reasoning side can tell an empty section from a
// missing one.
func BuildContext(insurer, provider []models.EvidencePassage, maxChars int) string {
	kept := make([]models.EvidencePassage, 0, len(insurer)+len(provider))
	kept = append(kept, insurer...)
	kept = append(kept, provider...)

	if maxChars > 0 {
		for len(kept) > 0 && len(render(kept)) > maxChars {
			kept = dropLowestScore(kept)
		}
	}
	return render(kept)
}

func render(passages []models.EvidencePassage) string {
	var builder strings.Builder

	builder.WriteString(insurerSectionHeader)
	builder.WriteString("\n")
	writeSection(&builder, passages, func(p models.EvidencePassage) bool {
		return p.Origin != constvars.EvidenceOriginProviderNotes
	})

	builder.WriteString("\n")
	builder.WriteString(providerSectionHeader)
	builder.WriteString("\n")
	writeSection(&builder, passages, func(p models.EvidencePassage) bool {
		return p.Origin == constvars.EvidenceOriginProviderNotes
	})

	return builder.String()
}

func writeSection(builder *strings.Builder, passages []models.EvidencePassage, belongs func(models.EvidencePassage) bool) {
	for _, passage := range passages {
		if !belongs(passage) {
			continue
		}
		builder.WriteString(fmt.Sprintf("[%s]\n%s\n", passage.Source, passage.Text))
	}
}

// dropLowestScore removes the single passage with the lowest score. Ties break
// toward the later passage so that earlier, equally scored evidence survives.
func dropLowestScore(passages []models.EvidencePassage) []models.EvidencePassage {
	lowest := 0
	for i := 1; i < len(passages); i++ {
		if passages[i].Score <= passages[lowest].Score {
			lowest = i
		}
	}
	return append(passages[:lowest:lowest], passages[lowest+1:]...)
}

// RankByScore returns the passages ordered highest score first without
// mutating the input. Used for logging the evidence a verdict was based on.
func RankByScore(passages []models.EvidencePassage) []models.EvidencePassage {
	ranked := make([]models.EvidencePassage, len(passages))
	copy(ranked, passages)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}
