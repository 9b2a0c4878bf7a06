package screening

import "creator-moderation/internal/models"

// DefaultRules returns the built-in keyword policy seeded on first run. It
// returns a fresh slice on every call.
func DefaultRules() []models.KeywordRule {
	return []models.KeywordRule{
		{Keyword: "scam", Category: models.CategorySpam, Severity: 4, Description: "Accusations or promotion of scams"},
		{Keyword: "fraud", Category: models.CategoryLegal, Severity: 5, Description: "Fraud allegations"},
		{Keyword: "lawsuit", Category: models.CategoryLegal, Severity: 3, Description: "Threatened legal action"},
		{Keyword: "sue", Category: models.CategoryLegal, Severity: 3, Description: "Threatened legal action"},
		{Keyword: "free money", Category: models.CategorySpam, Severity: 3, Description: "Get-rich-quick spam"},
		{Keyword: "crypto giveaway", Category: models.CategorySpam, Severity: 4, Description: "Crypto giveaway spam"},
		{Keyword: "whatsapp", Category: models.CategorySpam, Severity: 2, Description: "Moving the deal off-platform"},
		{Keyword: "telegram", Category: models.CategorySpam, Severity: 2, Description: "Moving the deal off-platform"},
		{Keyword: "pay outside", Category: models.CategorySpam, Severity: 3, Description: "Off-platform payment request"},
		{Keyword: "kill yourself", Category: models.CategoryHarassment, Severity: 5, Description: "Self-harm encouragement"},
	}
}
