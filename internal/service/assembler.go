package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ugalabz/oracle-server/internal/domain"
)

// filenamePatterns match document identifiers that must never reach the
// generation model: the reply is presented as the persona's own
// expertise, so internal source names cannot leak into it.
var filenamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\w+\.txt\b`),
	regexp.MustCompile(`\b\w+\.pdf\b`),
	regexp.MustCompile(`\bMidnight_\w+`),
	regexp.MustCompile(`\bCardano_\w+`),
	regexp.MustCompile(`\bMinotaur_\w+`),
}

const maxDocumentContextLen = 2000

// ScrubFilenames removes filename-like tokens and known internal document
// name prefixes from text.
func ScrubFilenames(text string) string {
	for _, p := range filenamePatterns {
		text = p.ReplaceAllString(text, "")
	}
	return text
}

// FormatWebResults renders web hits as a context block for generation.
func FormatWebResults(out domain.WebOutcome) string {
	if len(out.Results) == 0 {
		return "No relevant updates found from trusted public sources."
	}

	lines := make([]string, len(out.Results))
	for i, r := range out.Results {
		lines[i] = fmt.Sprintf("- Source %d: %q (from %s)", i+1, r.Snippet, r.Domain)
	}
	return "Based on live web search results:\n" + strings.Join(lines, "\n")
}

// AssembleContext merges the document and web branch outcomes into one
// bundle. Quality is a pure function of which context blocks are present.
func AssembleContext(doc domain.DocumentOutcome, web domain.WebOutcome) domain.ContextBundle {
	var bundle domain.ContextBundle

	if doc.Context != "" {
		clean := doc.Context
		if len(clean) > maxDocumentContextLen {
			clean = clean[:maxDocumentContextLen]
		}
		bundle.DocumentContext = ScrubFilenames(clean)
	}

	if len(web.Results) > 0 {
		bundle.WebContext = FormatWebResults(web)
	}

	bundle.HasStrongMatch = doc.HasStrongMatch

	hasDoc := bundle.DocumentContext != ""
	hasWeb := bundle.WebContext != ""
	switch {
	case hasDoc && hasWeb:
		bundle.Quality = domain.QualityDual
	case hasDoc:
		bundle.Quality = domain.QualityDocument
	case hasWeb:
		bundle.Quality = domain.QualityWeb
	default:
		bundle.Quality = domain.QualityLimited
	}

	bundle.Sources = append(bundle.Sources, doc.Sources...)
	bundle.Sources = append(bundle.Sources, web.Sources...)
	return bundle
}
