package workflow

import (
	"strings"
	"testing"

	"github.com/heksoli/Stocks-Watcher/events"

	"github.com/stretchr/testify/assert"
)

func sampleProfile() events.UserCreatedEvent {
	return events.UserCreatedEvent{
		Email:             "a@b.com",
		Name:              "Ann",
		Country:           "RO",
		InvestmentGoals:   "Growth",
		RiskTolerance:     "Medium",
		PreferredIndustry: "Technology",
	}
}

func TestProfileSummary_ContainsAllFields(t *testing.T) {
	summary := ProfileSummary(sampleProfile())

	assert.Contains(t, summary, "RO")
	assert.Contains(t, summary, "Growth")
	assert.Contains(t, summary, "Medium")
	assert.Contains(t, summary, "Technology")
}

func TestProfileSummary_IsTrimmed(t *testing.T) {
	summary := ProfileSummary(sampleProfile())

	assert.Equal(t, strings.TrimSpace(summary), summary)
	assert.True(t, strings.HasPrefix(summary, "- Country:"))
}

func TestBuildPrompt_SubstitutesProfileToken(t *testing.T) {
	prompt := BuildPrompt(sampleProfile())

	assert.NotContains(t, prompt, profileToken)
	assert.Contains(t, prompt, "RO")
	assert.Contains(t, prompt, "Growth")
	assert.Contains(t, prompt, "Medium")
	assert.Contains(t, prompt, "Technology")
}
