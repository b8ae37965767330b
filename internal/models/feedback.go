package models

// FeedbackItem is one piece of design feedback returned by the AI proxy.
type FeedbackItem struct {
	Area     string `json:"area"`
	Severity string `json:"severity"`
	Comment  string `json:"comment"`
}
