package workflow

import (
	"fmt"
	"strings"

	"github.com/heksoli/Stocks-Watcher/events"
)

// profileToken is the single substitution point in the prompt template.
const profileToken = "{{userProfile}}"

const welcomePromptTemplate = `You are writing the intro paragraph of a welcome email for a new user of a stock market dashboard app.

The user signed up with this investor profile:
{{userProfile}}

Write 2-3 friendly sentences that welcome them and mention their goals and preferred industry naturally. Plain text only: no subject line, no greeting, no sign-off.`

// ProfileSummary renders the four profile fields of a sign-up event as a
// trimmed bullet list.
func ProfileSummary(data events.UserCreatedEvent) string {
	summary := fmt.Sprintf(`
    - Country: %s
    - Investment Goals: %s
    - Risk Tolerance: %s
    - Preferred Industry: %s
    `,
		data.Country,
		data.InvestmentGoals,
		data.RiskTolerance,
		data.PreferredIndustry,
	)

	return strings.TrimSpace(summary)
}

// BuildPrompt substitutes the profile summary into the prompt template.
func BuildPrompt(data events.UserCreatedEvent) string {
	return strings.Replace(welcomePromptTemplate, profileToken, ProfileSummary(data), 1)
}
