package textscan

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \n",
			want: nil,
		},
		{
			name: "single sentence without terminator",
			text: "no punctuation here",
			want: []string{"no punctuation here"},
		},
		{
			name: "two sentences",
			text: "This is a hazard. Fire risk is evident.",
			want: []string{"This is a hazard.", "Fire risk is evident."},
		},
		{
			name: "mixed terminators",
			text: "Danger! Is it safe? It is not.",
			want: []string{"Danger!", "Is it safe?", "It is not."},
		},
		{
			name: "terminator without following space does not split",
			text: "See section 1.2 for details. Next sentence.",
			want: []string{"See section 1.2 for details.", "Next sentence."},
		},
		{
			name: "newline as boundary whitespace",
			text: "First line.\nSecond line.",
			want: []string{"First line.", "Second line."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnalyze_HazardAndGuidance(t *testing.T) {
	a := NewDefaultAnalyzer()

	findings := a.Analyze("This is a hazard. Fire risk is evident.")

	assert.Equal(t, []string{"This is a hazard.", "Fire risk is evident."}, findings.DetectedHazards)
	assert.Empty(t, findings.ComplianceIssues)

	assert.Contains(t, findings.RegulatoryComments, "hazard")
	assert.Contains(t, findings.RegulatoryComments, "fire")
	assert.Len(t, findings.RegulatoryComments, 2)

	// "fire" also triggers the accident history table
	assert.Len(t, findings.AccidentIncidents, 1)
}

func TestAnalyze_ComplianceIndependentOfHazards(t *testing.T) {
	a := NewDefaultAnalyzer()

	// "non-compliant" is not a hazard term
	findings := a.Analyze("The labeling is non-compliant.")
	assert.Empty(t, findings.DetectedHazards)
	assert.Equal(t, []string{"The labeling is non-compliant."}, findings.ComplianceIssues)

	// "violation" flags both facets
	findings = a.Analyze("This is a safety violation.")
	assert.Equal(t, []string{"This is a safety violation."}, findings.DetectedHazards)
	assert.Equal(t, []string{"This is a safety violation."}, findings.ComplianceIssues)
}

func TestAnalyze_FirstMatchWinsForGuidance(t *testing.T) {
	vocab := Vocabulary{
		HazardTerms: []string{"fire"},
		Advisories: []Advisory{
			{Keyword: "fire", Guidance: "keep extinguishers serviced"},
		},
	}
	a := NewAnalyzer(vocab)

	findings := a.Analyze("Fire drill one. Fire drill two.")
	assert.Len(t, findings.DetectedHazards, 2)
	// Only one advisory entry even though two sentences matched.
	assert.Equal(t, map[string]string{"fire": "keep extinguishers serviced"}, findings.RegulatoryComments)
}

func TestAnalyze_IncidentsNotDeduplicatedByTrigger(t *testing.T) {
	vocab := Vocabulary{
		Incidents: []IncidentRecord{
			{Trigger: "fire", Description: "incident one"},
			{Trigger: "fire", Description: "incident two"},
		},
	}
	a := NewAnalyzer(vocab)

	findings := a.Analyze("A fire was reported.")
	assert.Equal(t, []string{"incident one", "incident two"}, findings.AccidentIncidents)
}

func TestAnalyze_CaseInsensitive(t *testing.T) {
	a := NewDefaultAnalyzer()

	findings := a.Analyze("UNSAFE conditions were observed.")
	assert.Len(t, findings.DetectedHazards, 1)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	a := NewDefaultAnalyzer()

	findings := a.Analyze("")
	assert.Empty(t, findings.DetectedHazards)
	assert.Empty(t, findings.ComplianceIssues)
	assert.Empty(t, findings.RegulatoryComments)
	assert.Empty(t, findings.AccidentIncidents)
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := NewDefaultAnalyzer()
	text := "This is a hazard. The process is non-compliant. Fire exits are blocked."

	first := a.Analyze(text)
	second := a.Analyze(text)
	assert.Equal(t, first, second)
}

func TestRevise_AppendsRecommendation(t *testing.T) {
	a := NewDefaultAnalyzer()

	got := a.Revise("This is a hazard. Fire risk is evident.")
	want := "This is a hazard." + RecommendationSuffix +
		" Fire risk is evident." + RecommendationSuffix
	assert.Equal(t, want, got)
}

func TestRevise_LeavesCleanSentencesAlone(t *testing.T) {
	a := NewDefaultAnalyzer()

	got := a.Revise("Wear gloves at all times. Fire exits must stay clear.")
	want := "Wear gloves at all times. Fire exits must stay clear." + RecommendationSuffix
	assert.Equal(t, want, got)
}

func TestRevise_EmptyInput(t *testing.T) {
	a := NewDefaultAnalyzer()
	assert.Equal(t, "", a.Revise(""))
}
