package extract

import "strings"

// WordsPerMinute is the reading speed used for estimates.
const WordsPerMinute = 200

// ReadingTime estimates minutes to read text: whitespace-separated words over
// WordsPerMinute, rounded up. Empty text reads in zero minutes.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	return (words + WordsPerMinute - 1) / WordsPerMinute
}
