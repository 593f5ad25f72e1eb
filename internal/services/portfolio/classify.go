package portfolio

import (
	"strings"

	"github.com/bobmcallan/tealscan/internal/common"
	"github.com/bobmcallan/tealscan/internal/models"
)

// Classifier derives a best-effort asset category and distribution channel
// from a scheme name. Statements carry no authoritative fund classification,
// so this is keyword matching against an ordered rule table: the first rule
// with a keyword contained in the name wins.
type Classifier struct {
	rules           []categoryRule
	defaultCategory models.Category
	directKeywords  []string
}

type categoryRule struct {
	category models.Category
	keywords []string
}

// NewClassifier builds a Classifier from the configured rule table.
// Keywords are matched case-insensitively.
func NewClassifier(cfg common.ClassifierConfig) *Classifier {
	c := &Classifier{
		defaultCategory: models.Category(cfg.DefaultCategory),
		directKeywords:  upperAll(cfg.DirectKeywords),
	}
	if c.defaultCategory == "" {
		c.defaultCategory = models.CategoryEquity
	}
	for _, r := range cfg.Categories {
		c.rules = append(c.rules, categoryRule{
			category: models.Category(r.Category),
			keywords: upperAll(r.Keywords),
		})
	}
	return c
}

// DefaultClassifier returns a Classifier with the built-in rule table:
// LIQUID/DEBT/BOND → Debt, GOLD → Gold, otherwise Equity; DIRECT → Direct.
func DefaultClassifier() *Classifier {
	return NewClassifier(common.NewDefaultConfig().Classifier)
}

// Classify returns the category and channel for a scheme name.
func (c *Classifier) Classify(name string) (models.Category, models.Channel) {
	n := strings.ToUpper(name)
	return c.category(n), c.channel(n)
}

func (c *Classifier) category(upperName string) models.Category {
	for _, r := range c.rules {
		if containsAny(upperName, r.keywords) {
			return r.category
		}
	}
	return c.defaultCategory
}

func (c *Classifier) channel(upperName string) models.Channel {
	if containsAny(upperName, c.directKeywords) {
		return models.ChannelDirect
	}
	return models.ChannelRegular
}

// containsAny reports whether s contains any non-empty keyword.
func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func upperAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToUpper(strings.TrimSpace(s)))
	}
	return out
}
