package service

import (
	"strings"

	"github.com/ugalabz/oracle-server/internal/domain"
)

// strongMatchThreshold is the cosine similarity above which a single
// result makes the whole set a strong match.
const strongMatchThreshold = 0.75

// CategoryRule describes one high-value query category. Raw similarity on
// short, jargon-heavy chunks under-detects exact-keyword relevance, so a
// query that triggers a category is classified strong whenever any result
// carries one of the category's markers, regardless of score. The lists
// are product tuning, kept as data so categories can be added without
// touching the ranking core.
type CategoryRule struct {
	Name string

	// TriggerTerms activate the rule when any appears in the query.
	TriggerTerms []string

	// Markers are matched against result filenames and content.
	Markers []string

	// WebQueryTerms are appended to web queries for this category.
	WebQueryTerms string

	// BroadenedQuery is the unscoped fallback query used when every
	// domain-restricted search comes back empty.
	BroadenedQuery string
}

// Triggers reports whether the query activates this rule.
func (r CategoryRule) Triggers(query string) bool {
	q := strings.ToLower(query)
	for _, term := range r.TriggerTerms {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}

// Marks reports whether the result carries one of the rule's markers.
func (r CategoryRule) Marks(result domain.SearchResult) bool {
	filename := strings.ToLower(result.Filename)
	content := strings.ToLower(result.Content)
	for _, m := range r.Markers {
		if strings.Contains(filename, m) || strings.Contains(content, m) {
			return true
		}
	}
	return false
}

// DefaultCategoryRules returns the product's tuned category list.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{
			Name:           "airdrop",
			TriggerTerms:   []string{"airdrop", "eligible", "claim"},
			Markers:        []string{"airdrop", "eligible", "june 11, 2024"},
			WebQueryTerms:  "midnight airdrop eligibility",
			BroadenedQuery: "midnight airdrop eligibility claiming guide",
		},
	}
}

// RelevanceClassifier decides whether a ranked result set is a strong
// match for the query.
type RelevanceClassifier struct {
	rules []CategoryRule
}

// NewRelevanceClassifier creates a classifier with the given category rules.
func NewRelevanceClassifier(rules []CategoryRule) *RelevanceClassifier {
	return &RelevanceClassifier{rules: rules}
}

// MatchCategory returns the first rule triggered by the query, or nil.
func (c *RelevanceClassifier) MatchCategory(query string) *CategoryRule {
	for i := range c.rules {
		if c.rules[i].Triggers(query) {
			return &c.rules[i]
		}
	}
	return nil
}

// Classify reports whether the results constitute a strong match: either
// a triggered category with a marked result, or any similarity above the
// threshold.
func (c *RelevanceClassifier) Classify(query string, results []domain.SearchResult) bool {
	if len(results) == 0 {
		return false
	}

	if rule := c.MatchCategory(query); rule != nil {
		for _, r := range results {
			if rule.Marks(r) {
				return true
			}
		}
	}

	for _, r := range results {
		if r.Similarity > strongMatchThreshold {
			return true
		}
	}
	return false
}
