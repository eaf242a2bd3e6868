package domain

// Compliance category keys, matching the JSON object the model is asked to return.
const (
	CategoryDiscrimination = "discrimination"
	CategoryDefamation     = "defamation"
	CategoryAdvertisement  = "advertisement"
)

// CategoryOrder fixes the order violations are reported in.
var CategoryOrder = []string{CategoryDiscrimination, CategoryDefamation, CategoryAdvertisement}

// CategoryLabels maps category keys to the Korean labels used in violation lists.
var CategoryLabels = map[string]string{
	CategoryDiscrimination: "차별적 용어",
	CategoryDefamation:     "특정인물 비방",
	CategoryAdvertisement:  "광고성",
}

// CategoryFinding is the model's verdict for a single compliance category.
type CategoryFinding struct {
	Flag     bool     `json:"flag"`
	Evidence []string `json:"evidence"`
}

// Assessment is the normalized three-category result of analyzing one article.
type Assessment struct {
	Discrimination CategoryFinding `json:"discrimination"`
	Defamation     CategoryFinding `json:"defamation"`
	Advertisement  CategoryFinding `json:"advertisement"`
}

// Finding returns the finding for a category key.
func (a Assessment) Finding(category string) CategoryFinding {
	switch category {
	case CategoryDiscrimination:
		return a.Discrimination
	case CategoryDefamation:
		return a.Defamation
	case CategoryAdvertisement:
		return a.Advertisement
	}
	return CategoryFinding{}
}

// Normalize guarantees the full fixed shape: every category carries a boolean
// flag and a non-nil evidence list, regardless of what the model returned.
func (a *Assessment) Normalize() {
	for _, f := range []*CategoryFinding{&a.Discrimination, &a.Defamation, &a.Advertisement} {
		if f.Evidence == nil {
			f.Evidence = []string{}
		}
	}
}

// Violations lists the Korean labels of flagged categories in the fixed order.
func (a Assessment) Violations() []string {
	var labels []string
	for _, key := range CategoryOrder {
		if a.Finding(key).Flag {
			labels = append(labels, CategoryLabels[key])
		}
	}
	return labels
}

// FlaggedEvidence returns evidence for flagged categories only, keyed by
// category key and capped at limit entries per category.
func (a Assessment) FlaggedEvidence(limit int) map[string][]string {
	evidence := make(map[string][]string)
	for _, key := range CategoryOrder {
		finding := a.Finding(key)
		if !finding.Flag {
			continue
		}
		ev := finding.Evidence
		if len(ev) > limit {
			ev = ev[:limit]
		}
		if ev == nil {
			ev = []string{}
		}
		evidence[key] = ev
	}
	return evidence
}
