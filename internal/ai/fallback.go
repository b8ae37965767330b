package ai

import (
	"math/rand"

	"github.com/merahburam/ameo-assets/internal/models"
)

// Canned content returned when the provider is unreachable or its output is
// unusable. The endpoints always answer something.

var fallbackFeedback = []models.FeedbackItem{
	{Area: "layout", Severity: "suggestion", Comment: "Increase the whitespace between major sections so the hierarchy reads at a glance."},
	{Area: "typography", Severity: "suggestion", Comment: "Limit the design to two typefaces and establish a consistent scale for headings and body text."},
	{Area: "color", Severity: "minor", Comment: "Check the contrast ratio of text over imagery; aim for WCAG AA at minimum."},
	{Area: "general", Severity: "suggestion", Comment: "Align interactive elements to a shared grid to reduce visual noise."},
}

var fallbackSpeeches = []string{
	"Friends, colleagues, honored guests: today we celebrate not the pixels, but the patience behind them. Every great design begins as a bad sketch that someone refused to abandon. So raise your glass to iteration, to feedback taken gracefully, and to shipping before perfect. Thank you.",
	"They say a design is finished not when there is nothing left to add, but when there is nothing left to remove. By that measure, this speech is nearly perfect already. Keep your margins generous, your palettes small, and your deadlines flexible. Thank you all.",
	"I was asked to say a few words, and as any designer knows, the fewer the words, the larger the font. So in seventy-two point spirit: make bold choices, kern with kindness, and never trust a default gradient. Thank you.",
}

// FallbackFeedback returns the canned feedback list.
func FallbackFeedback() []models.FeedbackItem {
	items := make([]models.FeedbackItem, len(fallbackFeedback))
	copy(items, fallbackFeedback)
	return items
}

// FallbackSpeech picks one of the canned speeches.
func FallbackSpeech() string {
	return fallbackSpeeches[rand.Intn(len(fallbackSpeeches))]
}
