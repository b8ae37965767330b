package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedbackItemsPlainJSONArray(t *testing.T) {
	text := `[{"area":"color","severity":"minor","comment":"Low contrast."},{"area":"layout","severity":"major","comment":"Crowded header."}]`

	items := ParseFeedbackItems(text)
	require.Len(t, items, 2)
	assert.Equal(t, "color", items[0].Area)
	assert.Equal(t, "minor", items[0].Severity)
	assert.Equal(t, "Crowded header.", items[1].Comment)
}

func TestParseFeedbackItemsArrayInsideProse(t *testing.T) {
	text := "Sure! Here is the feedback you asked for:\n" +
		`[{"area":"typography","severity":"suggestion","comment":"Use a larger body size."}]` +
		"\nLet me know if you need more."

	items := ParseFeedbackItems(text)
	require.Len(t, items, 1)
	assert.Equal(t, "typography", items[0].Area)
}

func TestParseFeedbackItemsCodeFence(t *testing.T) {
	text := "```json\n[{\"area\":\"imagery\",\"severity\":\"minor\",\"comment\":\"Stock photo feels generic.\"}]\n```"

	items := ParseFeedbackItems(text)
	require.Len(t, items, 1)
	assert.Equal(t, "imagery", items[0].Area)
}

func TestParseFeedbackItemsSingleObject(t *testing.T) {
	text := `{"area":"layout","severity":"critical","comment":"Content overflows on mobile."}`

	items := ParseFeedbackItems(text)
	require.Len(t, items, 1)
	assert.Equal(t, "critical", items[0].Severity)
}

func TestParseFeedbackItemsNumberedListFallback(t *testing.T) {
	text := "Here are my thoughts:\n1. The logo is too small.\n2) **Increase** line height.\n3. Align the buttons.\nHope that helps!"

	items := ParseFeedbackItems(text)
	require.Len(t, items, 3)
	assert.Equal(t, "general", items[0].Area)
	assert.Equal(t, "suggestion", items[0].Severity)
	assert.Equal(t, "The logo is too small.", items[0].Comment)
	assert.Equal(t, "Increase line height.", items[1].Comment)
}

func TestParseFeedbackItemsGarbage(t *testing.T) {
	assert.Nil(t, ParseFeedbackItems("I cannot help with that."))
	assert.Nil(t, ParseFeedbackItems(""))
	assert.Nil(t, ParseFeedbackItems("[]"))
}

func TestParseFeedbackItemsNormalizesFields(t *testing.T) {
	text := `[{"area":"","severity":"URGENT","comment":"**Fix** the margins."}]`

	items := ParseFeedbackItems(text)
	require.Len(t, items, 1)
	assert.Equal(t, "general", items[0].Area)
	assert.Equal(t, "suggestion", items[0].Severity)
	assert.Equal(t, "Fix the margins.", items[0].Comment)
}

func TestStripMarkdown(t *testing.T) {
	assert.Equal(t, "Hello world", StripMarkdown("# Hello world"))
	assert.Equal(t, "bold and italic", StripMarkdown("**bold** and *italic*"))
	assert.Equal(t, "code here", StripMarkdown("`code` here"))
}

func TestStripCodeFencesUnfenced(t *testing.T) {
	assert.Equal(t, "plain text", StripCodeFences("plain text"))
}
