package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/tealscan/internal/common"
	"github.com/bobmcallan/tealscan/internal/models"
)

func TestClassifier_DefaultRules(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name     string
		category models.Category
		channel  models.Channel
	}{
		{"HDFC LIQUID FUND DIRECT", models.CategoryDebt, models.ChannelDirect},
		{"ICICI GOLD FUND", models.CategoryGold, models.ChannelRegular},
		{"AXIS BLUECHIP FUND", models.CategoryEquity, models.ChannelRegular},
		{"Aditya Birla Sun Life Corporate Bond Fund - Growth-Direct Plan", models.CategoryDebt, models.ChannelDirect},
		{"kotak debt hybrid fund", models.CategoryDebt, models.ChannelRegular},
		{"Nippon India Gold Savings Fund - Direct Plan", models.CategoryGold, models.ChannelDirect},
		{"Parag Parikh Flexi Cap Fund - Direct Plan Growth", models.CategoryEquity, models.ChannelDirect},
		{"", models.CategoryEquity, models.ChannelRegular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, channel := c.Classify(tt.name)
			assert.Equal(t, tt.category, category)
			assert.Equal(t, tt.channel, channel)
		})
	}
}

func TestClassifier_FirstMatchWins(t *testing.T) {
	// Debt is listed before Gold, so a gold bond fund is Debt
	category, _ := DefaultClassifier().Classify("SBI GOLD BOND FUND")
	assert.Equal(t, models.CategoryDebt, category)
}

func TestClassifier_CustomRules(t *testing.T) {
	c := NewClassifier(common.ClassifierConfig{
		Categories: []common.CategoryRule{
			{Category: "Hybrid", Keywords: []string{"hybrid", "balanced advantage"}},
			{Category: "Debt", Keywords: []string{"gilt"}},
		},
		DefaultCategory: "Equity",
		DirectKeywords:  []string{"direct", "- dir"},
	})

	category, channel := c.Classify("HDFC Balanced Advantage Fund - Dir Growth")
	assert.Equal(t, models.Category("Hybrid"), category)
	assert.Equal(t, models.ChannelDirect, channel)

	category, channel = c.Classify("SBI Magnum Gilt Fund")
	assert.Equal(t, models.CategoryDebt, category)
	assert.Equal(t, models.ChannelRegular, channel)
}

func TestClassifier_EmptyDefaultFallsBackToEquity(t *testing.T) {
	c := NewClassifier(common.ClassifierConfig{})
	category, channel := c.Classify("ANY FUND DIRECT")
	assert.Equal(t, models.CategoryEquity, category)
	assert.Equal(t, models.ChannelRegular, channel, "no direct keywords configured")
}
