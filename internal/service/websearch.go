package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ugalabz/oracle-server/internal/domain"
	"github.com/ugalabz/oracle-server/internal/port"
)

// DefaultTrustedDomains are the sources scoped web searches are
// restricted to: breadth across trusted domains over depth in one.
var DefaultTrustedDomains = []string{
	"midnight.io",
	"cardano.org",
	"docs.cardano.org",
	"github.com/input-output-hk",
}

const perDomainResultCount = 3

// WebSearcher fans one query out across the trusted domains in parallel
// and keeps the top result per domain. A failed or timed-out domain
// contributes nothing; it never fails the overall search.
type WebSearcher struct {
	provider   port.WebSearchProvider
	classifier *RelevanceClassifier
	domains    []string
}

// NewWebSearcher creates a scoped web searcher over the given domains.
func NewWebSearcher(provider port.WebSearchProvider, classifier *RelevanceClassifier, domains []string) *WebSearcher {
	if len(domains) == 0 {
		domains = DefaultTrustedDomains
	}
	return &WebSearcher{provider: provider, classifier: classifier, domains: domains}
}

// Search runs the scoped fan-out. Queries matching a high-value category
// are augmented with the category's qualifier terms; if the scoped search
// yields nothing for such a query, one unscoped broadened query runs as a
// fallback, tagged "general-search".
func (s *WebSearcher) Search(ctx context.Context, query string) domain.WebOutcome {
	rule := s.classifier.MatchCategory(query)

	enhanced := query
	if rule != nil && rule.WebQueryTerms != "" {
		enhanced = query + " " + rule.WebQueryTerms
	}

	perDomain := make([]*domain.WebResult, len(s.domains))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range s.domains {
		g.Go(func() error {
			results, err := s.provider.Search(gctx, enhanced+" site:"+d, perDomainResultCount)
			if err != nil {
				slog.Warn("scoped web search failed", "domain", d, "error", err)
				return nil
			}
			if len(results) > 0 {
				top := results[0]
				top.Domain = d
				perDomain[i] = &top
			}
			return nil
		})
	}
	_ = g.Wait() // branches swallow their own errors

	var out domain.WebOutcome
	for i, d := range s.domains {
		if perDomain[i] != nil {
			out.Results = append(out.Results, *perDomain[i])
			out.Sources = append(out.Sources, d)
		}
	}

	if len(out.Results) == 0 && rule != nil && rule.BroadenedQuery != "" {
		results, err := s.provider.Search(ctx, rule.BroadenedQuery, perDomainResultCount)
		switch {
		case err != nil:
			slog.Warn("broadened web search failed", "error", err)
		case len(results) > 0:
			if len(results) > 2 {
				results = results[:2]
			}
			out.Results = append(out.Results, results...)
			out.Sources = append(out.Sources, "general-search")
		}
	}

	slog.Info("web search complete", "query", query, "results", len(out.Results), "sources", len(out.Sources))
	return out
}
