package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/merahburam/ameo-assets/internal/models"
)

var (
	codeFenceRe    = regexp.MustCompile("(?s)```[a-zA-Z]*\n?(.*?)```")
	numberedLineRe = regexp.MustCompile(`^\s*\d+[.)]\s+(.*)$`)
	emphasisRe     = regexp.MustCompile(`(\*\*|__|\*|_|` + "`" + `)`)
	headerRe       = regexp.MustCompile(`(?m)^#{1,6}\s*`)
)

// StripCodeFences unwraps fenced code blocks, keeping their contents.
func StripCodeFences(text string) string {
	if !strings.Contains(text, "```") {
		return text
	}
	matches := codeFenceRe.FindStringSubmatch(text)
	if len(matches) == 2 {
		return strings.TrimSpace(matches[1])
	}
	return strings.ReplaceAll(text, "```", "")
}

// StripMarkdown removes emphasis markers and headers, leaving plain text.
func StripMarkdown(text string) string {
	text = StripCodeFences(text)
	text = headerRe.ReplaceAllString(text, "")
	text = emphasisRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// ParseFeedbackItems extracts structured feedback from free-form model text.
// It tries, in order: a JSON array embedded anywhere in the text, a single
// JSON object, and finally a numbered list. A nil slice means nothing usable
// was found.
func ParseFeedbackItems(text string) []models.FeedbackItem {
	cleaned := StripCodeFences(text)

	if items := parseJSONArray(cleaned); len(items) > 0 {
		return items
	}
	if item, ok := parseJSONObject(cleaned); ok {
		return []models.FeedbackItem{item}
	}
	return parseNumberedList(cleaned)
}

func parseJSONArray(text string) []models.FeedbackItem {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end <= start {
		return nil
	}

	var items []models.FeedbackItem
	if err := json.Unmarshal([]byte(text[start:end+1]), &items); err != nil {
		return nil
	}

	result := items[:0]
	for _, item := range items {
		if strings.TrimSpace(item.Comment) == "" {
			continue
		}
		result = append(result, normalizeItem(item))
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func parseJSONObject(text string) (models.FeedbackItem, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return models.FeedbackItem{}, false
	}

	var item models.FeedbackItem
	if err := json.Unmarshal([]byte(text[start:end+1]), &item); err != nil {
		return models.FeedbackItem{}, false
	}
	if strings.TrimSpace(item.Comment) == "" {
		return models.FeedbackItem{}, false
	}
	return normalizeItem(item), true
}

// parseNumberedList turns "1. comment" style lines into feedback items.
func parseNumberedList(text string) []models.FeedbackItem {
	var items []models.FeedbackItem
	for _, line := range strings.Split(text, "\n") {
		matches := numberedLineRe.FindStringSubmatch(line)
		if len(matches) != 2 {
			continue
		}
		comment := StripMarkdown(matches[1])
		if comment == "" {
			continue
		}
		items = append(items, models.FeedbackItem{
			Area:     "general",
			Severity: "suggestion",
			Comment:  comment,
		})
	}
	return items
}

func normalizeItem(item models.FeedbackItem) models.FeedbackItem {
	if strings.TrimSpace(item.Area) == "" {
		item.Area = "general"
	}
	switch strings.ToLower(strings.TrimSpace(item.Severity)) {
	case "critical", "major", "minor", "suggestion":
		item.Severity = strings.ToLower(strings.TrimSpace(item.Severity))
	default:
		item.Severity = "suggestion"
	}
	item.Comment = StripMarkdown(item.Comment)
	return item
}
