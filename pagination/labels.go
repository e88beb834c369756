package pagination

import (
	"fmt"

	"github.com/kakehashi-asia/auditreport/document"
)

// Labels is the human-language copy of the report. The zero value is not
// useful; start from DefaultLabels and override what you need.
type Labels struct {
	ReportTitle   string                          `json:"reportTitle" mapstructure:"report_title"`
	Confidential  string                          `json:"confidential" mapstructure:"confidential"`
	ClientSuffix  string                          `json:"clientSuffix" mapstructure:"client_suffix"`
	PageTitles    map[Section]string              `json:"pageTitles" mapstructure:"page_titles"`
	TOCTitles     map[Section]string              `json:"tocTitles" mapstructure:"toc_titles"`
	ScoreText     map[document.HealthScore]string `json:"scoreText" mapstructure:"score_text"`
	ScoreCriteria string                          `json:"scoreCriteria" mapstructure:"score_criteria"`
}

// DefaultLabels returns the English copy.
func DefaultLabels() Labels {
	return Labels{
		ReportTitle:  "Monthly System Audit Report",
		Confidential: "Confidential",
		PageTitles: map[Section]string{
			SectionCover:       "Monthly System Audit & Resilience Report",
			SectionTOC:         "Table of Contents",
			SectionSummary:     "Executive Summary",
			SectionStatistics:  "Security Statistics",
			SectionAssets:      "Asset Details",
			SectionPerformance: "Performance Analysis",
			SectionEvidence:    "Operational Evidence",
			SectionChanges:     "Change Management",
			SectionNews:        "Global Intelligence",
			SectionRoadmap:     "Strategic Roadmap",
			SectionInvoice:     "Invoice",
		},
		TOCTitles: map[Section]string{
			SectionSummary:     "Executive Summary",
			SectionStatistics:  "Security Incident Statistics",
			SectionAssets:      "Asset Status Detail",
			SectionPerformance: "Resource & Performance Analysis",
			SectionEvidence:    "Operational Evidence",
			SectionChanges:     "Change Log",
			SectionNews:        "Global Threat Intelligence",
			SectionRoadmap:     "Strategic Roadmap & Recommendations",
			SectionInvoice:     "Invoice",
		},
		ScoreText: map[document.HealthScore]string{
			document.ScoreS: "Extremely stable (exemplary state)",
			document.ScoreA: "Generally stable, minor follow-up needed",
			document.ScoreB: "Caution, improvement recommended",
			document.ScoreC: "Critical, immediate action required",
		},
		ScoreCriteria: "Criteria: availability 40% + security strength 40% + resource headroom 20%",
	}
}

// RunningTitle is the header line shown on every page with a header.
func (l Labels) RunningTitle(m document.Meta) string {
	switch {
	case m.Year != "" && m.Month != "":
		return fmt.Sprintf("%s - %s/%s", l.ReportTitle, m.Year, m.Month)
	case m.Month != "":
		return fmt.Sprintf("%s - %s", l.ReportTitle, m.Month)
	default:
		return l.ReportTitle
	}
}

// PageTitle returns the title of s, falling back to the section name.
func (l Labels) PageTitle(s Section) string {
	if t, ok := l.PageTitles[s]; ok && t != "" {
		return t
	}
	return string(s)
}

func (l Labels) tocTitle(s Section) string {
	if t, ok := l.TOCTitles[s]; ok && t != "" {
		return t
	}
	return l.PageTitle(s)
}

// merge fills empty fields of l from d.
func (l Labels) merge(d Labels) Labels {
	if l.ReportTitle == "" {
		l.ReportTitle = d.ReportTitle
	}
	if l.Confidential == "" {
		l.Confidential = d.Confidential
	}
	if l.ScoreCriteria == "" {
		l.ScoreCriteria = d.ScoreCriteria
	}
	l.PageTitles = mergeMap(l.PageTitles, d.PageTitles)
	l.TOCTitles = mergeMap(l.TOCTitles, d.TOCTitles)
	l.ScoreText = mergeMap(l.ScoreText, d.ScoreText)
	return l
}

func mergeMap[K comparable](m, d map[K]string) map[K]string {
	out := make(map[K]string, len(d))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range m {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
