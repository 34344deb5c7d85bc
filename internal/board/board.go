package board

import (
	"strings"

	"garim-lab/internal/model"
)

// Rule maps a set of board-name keywords to a storage category.
type Rule struct {
	Keywords []string
	Category model.Category
}

// DefaultRules is the ordered rule table. The first rule with a keyword hit wins;
// a board matching no rule is stored under society.
var DefaultRules = []Rule{
	{Keywords: []string{"stock", "주식", "real estate", "부동산", "invest", "재테크"}, Category: model.CategoryEconomy},
	{Keywords: []string{"politic", "정치"}, Category: model.CategoryPolitics},
}

// Classifier derives categories from board names.
type Classifier struct {
	rules    []Rule
	fallback model.Category
}

// NewClassifier builds a classifier over rules, falling back to society.
func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules, fallback: model.CategorySociety}
}

// Category returns the bucket for a board name using case-insensitive substring matching.
func (c *Classifier) Category(board string) model.Category {
	name := strings.ToLower(board)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if kw != "" && strings.Contains(name, strings.ToLower(kw)) {
				return r.Category
			}
		}
	}
	return c.fallback
}

var defaultClassifier = NewClassifier(DefaultRules)

// DeriveCategory classifies a board name with DefaultRules.
func DeriveCategory(board string) model.Category {
	return defaultClassifier.Category(board)
}
