package extract

import (
	"strings"
	"testing"
)

func TestBuildPromptTruncatesContent(t *testing.T) {
	text := strings.Repeat("a", MaxPromptChars) + "TAIL"
	prompt := BuildPrompt(text)
	if strings.Contains(prompt, "TAIL") {
		t.Fatalf("expected content truncated at %d characters", MaxPromptChars)
	}
	if !strings.Contains(prompt, strings.Repeat("a", MaxPromptChars)) {
		t.Fatalf("expected first %d characters kept", MaxPromptChars)
	}
	for _, want := range []string{`"title"`, `"summary"`, `"keyPoints"`, `"tags"`, "Respond only with valid JSON"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestTruncateCharsCountsRunes(t *testing.T) {
	if got := truncateChars("héllo", 2); got != "hé" {
		t.Fatalf("got %q", got)
	}
	if got := truncateChars("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
}

func TestReadingTime(t *testing.T) {
	words := func(n int) string { return strings.TrimSpace(strings.Repeat("word ", n)) }
	tests := []struct {
		text string
		want int
	}{
		{text: "", want: 0},
		{text: "   \n\t ", want: 0},
		{text: "one", want: 1},
		{text: words(200), want: 1},
		{text: words(201), want: 2},
		{text: words(250), want: 2},
		{text: words(401), want: 3},
	}
	for _, tt := range tests {
		if got := ReadingTime(tt.text); got != tt.want {
			t.Fatalf("ReadingTime(%d words) = %d, want %d", len(strings.Fields(tt.text)), got, tt.want)
		}
	}
}
