package ai

import "fmt"

const FeedbackSystemPrompt = `You are a senior visual designer reviewing work submitted to the Ameo design app.
Respond ONLY with a JSON array of feedback objects. Each object has the keys
"area" (layout, typography, color, imagery or general), "severity" (critical,
major, minor or suggestion) and "comment" (one concrete, actionable sentence).
Return between 3 and 6 objects and nothing else.`

const SpeechSystemPrompt = `You write short, warm, lightly humorous speeches of 3 to 5 sentences.
Plain text only, no markdown, no stage directions.`

// FeedbackUserPrompt renders the prompt for a design-feedback request.
func FeedbackUserPrompt(title, description string) string {
	return fmt.Sprintf("Design title: %s\n\nDesign description:\n%s", title, description)
}

// SpeechUserPrompt renders the prompt for a speech request.
func SpeechUserPrompt(topic string) string {
	if topic == "" {
		topic = "the craft of design and the people who practice it"
	}
	return fmt.Sprintf("Write a speech about: %s", topic)
}
