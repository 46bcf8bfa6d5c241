package summaries

import (
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	shareAlphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
	shareRandomLen = 9
	defaultSiteURL = "http://localhost:3000"
)

// shareToken builds "{id}_{unixMillis}_{9 random base36 chars}".
func shareToken(id string, now time.Time) (string, error) {
	suffix, err := gonanoid.Generate(shareAlphabet, shareRandomLen)
	if err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return fmt.Sprintf("%s_%d_%s", id, now.UnixMilli(), suffix), nil
}

func shareURL(siteURL, id, token string) string {
	base := strings.TrimRight(strings.TrimSpace(siteURL), "/")
	if base == "" {
		base = defaultSiteURL
	}
	return fmt.Sprintf("%s/shared/%s?token=%s", base, id, token)
}
