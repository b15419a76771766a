package advisor

import (
	"fmt"
	"strings"

	"github.com/westleygroup/card-advisor/internal/model"
)

// SystemPrompt frames the generation provider as a decisive consumer
// finance expert.
const SystemPrompt = `You are a US consumer finance decision expert.

Your job is to recommend the best credit card for the user based strictly on their financial profile.

Be decisive, practical, and personalized.
Avoid generic explanations.
Do not overwhelm the user.`

// BuildUserPrompt renders the profile into the user message. The field
// order is fixed and the five task demands are part of the contract
// with the provider; the orchestrator does not verify the output
// against them.
func BuildUserPrompt(p model.UserProfile) string {
	return fmt.Sprintf(`User profile:
- Credit score range: %s
- Monthly income: %s
- Spending categories: %s
- Primary goal: %s
- Carries balance: %s
- Annual fee comfort: %s
- Credit history length: %s

Task:
1. Rank the top 3 US credit cards for this user.
2. Clearly state which card is #1 and why it is the best fit.
3. Explain why the other options are weaker.
4. Warn the user about bad choices for their situation.
5. End with a clear recommended next action.

Be confident and specific.`,
		p.CreditScore,
		p.Income,
		strings.Join(p.Spending, ", "),
		p.Goal,
		p.CarriesBalance,
		p.AnnualFee,
		p.CreditHistory,
	)
}
