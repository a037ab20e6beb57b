package textscan

// Advisory binds a keyword to the regulatory guidance emitted when a
// hazard-flagged sentence mentions it. Rules are evaluated in order so
// the first matching sentence wins for each keyword.
type Advisory struct {
	Keyword  string
	Guidance string
}

// IncidentRecord binds a trigger keyword to a historical incident
// description. One output entry is produced per record whose trigger
// occurs anywhere in the document; records are not deduplicated by
// trigger.
type IncidentRecord struct {
	Trigger     string
	Description string
}

// Vocabulary is the full keyword configuration for analysis and
// revision. It is plain data so deployments can substitute their own
// term lists without touching the scanning logic.
type Vocabulary struct {
	// HazardTerms flag a sentence as hazardous on case-insensitive
	// substring match.
	HazardTerms []string
	// ComplianceTerms flag a sentence as a compliance issue,
	// independent of hazard detection.
	ComplianceTerms []string
	// Advisories map hazard-sentence keywords to regulatory guidance.
	Advisories []Advisory
	// Incidents is the historical accident table.
	Incidents []IncidentRecord
}

// DefaultVocabulary returns the built-in safety-audit term lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		HazardTerms: []string{
			"hazard", "danger", "risk", "unsafe", "violation",
			"fire", "fall", "electrical",
		},
		ComplianceTerms: []string{
			"non-compliant", "violation",
		},
		Advisories: []Advisory{
			{Keyword: "hazard", Guidance: "OSHA 29 CFR 1910 requires identified hazards to be assessed and controlled before work proceeds."},
			{Keyword: "fire", Guidance: "NFPA 1 mandates maintained fire protection systems and unobstructed egress routes."},
			{Keyword: "electrical", Guidance: "NFPA 70E requires an electrical safety program with lockout/tagout procedures."},
			{Keyword: "fall", Guidance: "OSHA 29 CFR 1926.501 requires fall protection at elevations of six feet or more."},
			{Keyword: "chemical", Guidance: "OSHA 29 CFR 1910.1200 requires labeling and safety data sheets for hazardous chemicals."},
		},
		Incidents: []IncidentRecord{
			{Trigger: "fire", Description: "2019: Warehouse fire caused by blocked sprinkler access resulted in total inventory loss."},
			{Trigger: "fall", Description: "2020: Worker fall from unguarded platform led to six-month operations suspension."},
			{Trigger: "electrical", Description: "2018: Electrical arc flash during unauthorized panel maintenance injured two technicians."},
			{Trigger: "chemical", Description: "2021: Chemical splash incident traced to missing eye-wash station in mixing area."},
		},
	}
}
