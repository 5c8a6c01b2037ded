package domain

// WebResult is a single hit returned by the web search provider.
type WebResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Domain  string `json:"domain"`
}

// WebOutcome aggregates scoped web searches across the trusted domains.
// Sources lists the domains that contributed at least one result and is
// used for diagnostics only, never surfaced to the end user.
type WebOutcome struct {
	Results []WebResult
	Sources []string
}

// DocumentOutcome is the scored result of the vector search branch.
type DocumentOutcome struct {
	HasStrongMatch bool
	Context        string
	Sources        []string
}

// InformationQuality classifies how much evidence backs a reply.
type InformationQuality string

const (
	QualityDual     InformationQuality = "DUAL-MODE"
	QualityDocument InformationQuality = "DOCUMENT-BASED"
	QualityWeb      InformationQuality = "WEB-BASED"
	QualityLimited  InformationQuality = "LIMITED"
)

// ContextBundle is the merged evidence handed to the generation call.
// Quality is derived purely from which context blocks are non-empty.
type ContextBundle struct {
	DocumentContext string
	WebContext      string
	HasStrongMatch  bool
	Quality         InformationQuality
	Sources         []string
}
