// Package textscan implements keyword-based safety document analysis:
// sentence-level hazard and compliance detection, regulatory guidance
// lookup, accident history matching, and annotated document revision.
// All functions are pure and deterministic; accuracy beyond substring
// matching is out of scope.
package textscan

import "strings"

// RecommendationSuffix is appended verbatim to every hazard-flagged
// sentence by Revise.
const RecommendationSuffix = " [Recommendation: Review this procedure and implement risk mitigation measures.]"

// Findings is the structured result of Analyze. All facets may be empty;
// slices keep document order, RegulatoryComments keeps one entry per
// distinct keyword.
type Findings struct {
	DetectedHazards    []string          `json:"detected_hazards"`
	ComplianceIssues   []string          `json:"compliance_issues"`
	RegulatoryComments map[string]string `json:"regulatory_comments"`
	AccidentIncidents  []string          `json:"accident_incidents"`
}

// EmptyFindings returns a Findings with all facets allocated and empty.
// Used as the degraded-mode result when analysis cannot run.
func EmptyFindings() Findings {
	return Findings{
		DetectedHazards:    []string{},
		ComplianceIssues:   []string{},
		RegulatoryComments: map[string]string{},
		AccidentIncidents:  []string{},
	}
}

// Analyzer scans documents against a fixed vocabulary.
type Analyzer struct {
	vocab Vocabulary
}

// NewAnalyzer creates an Analyzer. A zero-valued vocabulary (no terms)
// is allowed and yields empty findings for every document.
func NewAnalyzer(vocab Vocabulary) *Analyzer {
	return &Analyzer{vocab: vocab}
}

// NewDefaultAnalyzer creates an Analyzer with the built-in vocabulary.
func NewDefaultAnalyzer() *Analyzer {
	return NewAnalyzer(DefaultVocabulary())
}

// SplitSentences splits text on sentence-terminal punctuation (.!?)
// followed by whitespace. Terminators stay attached to their sentence
// and each sentence is trimmed. Empty or blank input yields no
// sentences.
func SplitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			if i+1 < len(runes) && isSpace(runes[i+1]) {
				if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
					sentences = append(sentences, s)
				}
				start = i + 1
			}
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// Analyze extracts findings from raw document text.
func (a *Analyzer) Analyze(text string) Findings {
	findings := EmptyFindings()
	sentences := SplitSentences(text)

	for _, sentence := range sentences {
		hazardous := false
		for _, term := range a.vocab.HazardTerms {
			if containsFold(sentence, term) {
				hazardous = true
				break
			}
		}
		if hazardous {
			findings.DetectedHazards = append(findings.DetectedHazards, sentence)
			// Guidance lookup only runs on hazard-flagged sentences.
			// First sentence to mention a keyword wins.
			for _, adv := range a.vocab.Advisories {
				if _, seen := findings.RegulatoryComments[adv.Keyword]; seen {
					continue
				}
				if containsFold(sentence, adv.Keyword) {
					findings.RegulatoryComments[adv.Keyword] = adv.Guidance
				}
			}
		}

		for _, term := range a.vocab.ComplianceTerms {
			if containsFold(sentence, term) {
				findings.ComplianceIssues = append(findings.ComplianceIssues, sentence)
				break
			}
		}
	}

	lowered := strings.ToLower(text)
	for _, rec := range a.vocab.Incidents {
		if strings.Contains(lowered, strings.ToLower(rec.Trigger)) {
			findings.AccidentIncidents = append(findings.AccidentIncidents, rec.Description)
		}
	}

	return findings
}

// Revise produces the annotated document: every hazard-flagged sentence
// gets RecommendationSuffix appended, sentences are rejoined with a
// single space, nothing else is altered.
func (a *Analyzer) Revise(text string) string {
	sentences := SplitSentences(text)
	revised := make([]string, 0, len(sentences))

	for _, sentence := range sentences {
		out := sentence
		for _, term := range a.vocab.HazardTerms {
			if containsFold(sentence, term) {
				out += RecommendationSuffix
				break
			}
		}
		revised = append(revised, out)
	}
	return strings.Join(revised, " ")
}
