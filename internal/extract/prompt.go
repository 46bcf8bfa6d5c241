package extract

import "fmt"

// MaxPromptChars bounds how much of the source text is sent to the model.
const MaxPromptChars = 8000

const promptTemplate = `Please analyze the following blog post/article and provide a structured response in JSON format with the following fields:

1. "title": A concise, descriptive title for this content (max 100 characters)
2. "summary": A comprehensive summary of the main content (2-3 paragraphs, 150-300 words)
3. "keyPoints": An array of 4-6 key takeaways or main points (each 15-30 words)
4. "tags": An array of 3-8 relevant tags/topics covered in the content

Content to analyze:
%s

Respond only with valid JSON, no additional text or formatting.`

// BuildPrompt renders the summarization prompt for text, truncated to
// MaxPromptChars characters.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, truncateChars(text, MaxPromptChars))
}

func truncateChars(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
