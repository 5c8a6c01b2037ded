package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugalabz/oracle-server/internal/domain"
)

func TestMatchCategory(t *testing.T) {
	classifier := NewRelevanceClassifier(DefaultCategoryRules())

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"airdrop keyword", "how does the midnight airdrop work", "airdrop"},
		{"eligibility keyword", "am I eligible for the distribution", "airdrop"},
		{"claim keyword", "how do I claim my tokens", "airdrop"},
		{"case insensitive", "AIRDROP details please", "airdrop"},
		{"no category", "what is a zk proof", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := classifier.MatchCategory(tt.query)
			if tt.want == "" {
				assert.Nil(t, rule)
				return
			}
			require.NotNil(t, rule)
			assert.Equal(t, tt.want, rule.Name)
		})
	}
}

func TestClassify(t *testing.T) {
	classifier := NewRelevanceClassifier(DefaultCategoryRules())

	t.Run("empty results are never strong", func(t *testing.T) {
		assert.False(t, classifier.Classify("midnight airdrop", nil))
	})

	t.Run("high similarity is strong without a category", func(t *testing.T) {
		results := []domain.SearchResult{{Content: "zk proofs", Similarity: 0.9}}
		assert.True(t, classifier.Classify("what is a zk proof", results))
	})

	t.Run("threshold is exclusive", func(t *testing.T) {
		results := []domain.SearchResult{{Content: "zk proofs", Similarity: strongMatchThreshold}}
		assert.False(t, classifier.Classify("what is a zk proof", results))
	})

	t.Run("category marker in content overrides low similarity", func(t *testing.T) {
		results := []domain.SearchResult{{
			Content:    "snapshot taken on june 11, 2024 for all holders",
			Similarity: 0.3,
		}}
		assert.True(t, classifier.Classify("when can I claim", results))
	})

	t.Run("category marker in filename overrides low similarity", func(t *testing.T) {
		results := []domain.SearchResult{{
			Filename:   "Midnight_Airdrop_Guide.txt",
			Content:    "general background",
			Similarity: 0.2,
		}}
		assert.True(t, classifier.Classify("am I eligible", results))
	})

	t.Run("category without marker falls back to threshold", func(t *testing.T) {
		results := []domain.SearchResult{{
			Filename:   "tokenomics.txt",
			Content:    "supply schedule",
			Similarity: 0.4,
		}}
		assert.False(t, classifier.Classify("airdrop details", results))
	})
}
