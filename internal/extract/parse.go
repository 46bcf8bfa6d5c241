package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Result is the structured summary returned by the model.
type Result struct {
	Title     string   `json:"title" yaml:"title"`
	Summary   string   `json:"summary" yaml:"summary"`
	KeyPoints []string `json:"keyPoints" yaml:"keyPoints"`
	Tags      []string `json:"tags" yaml:"tags"`
}

var (
	leadingJSONFence = regexp.MustCompile("^```json\\s*")
	leadingFence     = regexp.MustCompile("^```\\s*")
	trailingFence    = regexp.MustCompile("\\s*```$")
	embeddedObject   = regexp.MustCompile(`\{[\s\S]*\}`)
)

// attempt is the outcome of one decode strategy.
type attempt struct {
	name   string
	fields map[string]json.RawMessage
	err    error
}

type decoder struct {
	name string
	run  func(cleaned string) (map[string]json.RawMessage, error)
}

var decoders = []decoder{
	{name: "direct", run: decodeDirect},
	{name: "embedded", run: decodeEmbedded},
}

// Parse turns raw model output into a Result. Code fences are stripped, then
// the output is decoded directly and, failing that, from the outermost
// {...} span. A decoded object missing any field is rejected.
func Parse(raw string) (Result, error) {
	res, _, err := parse(raw)
	return res, err
}

func parse(raw string) (Result, string, error) {
	cleaned := stripFences(strings.TrimSpace(raw))

	var tried []attempt
	for _, d := range decoders {
		fields, err := d.run(cleaned)
		a := attempt{name: d.name, fields: fields, err: err}
		tried = append(tried, a)
		if err != nil {
			continue
		}
		res, err := validate(a.fields)
		if err != nil {
			return Result{}, a.name, err
		}
		return res, a.name, nil
	}

	last := tried[len(tried)-1]
	if errors.Is(last.err, errNoObject) {
		return Result{}, "", fmt.Errorf("%w - no valid JSON found", ErrExtraction)
	}
	return Result{}, "", fmt.Errorf("%w - invalid AI response format: %v", ErrExtraction, last.err)
}

func stripFences(s string) string {
	switch {
	case strings.HasPrefix(s, "```json"):
		s = leadingJSONFence.ReplaceAllString(s, "")
		return trailingFence.ReplaceAllString(s, "")
	case strings.HasPrefix(s, "```"):
		s = leadingFence.ReplaceAllString(s, "")
		return trailingFence.ReplaceAllString(s, "")
	default:
		return s
	}
}

var errNoObject = errors.New("no JSON object in response")

func decodeDirect(cleaned string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeEmbedded(cleaned string) (map[string]json.RawMessage, error) {
	match := embeddedObject.FindString(cleaned)
	if match == "" {
		return nil, errNoObject
	}
	return decodeDirect(match)
}

func validate(fields map[string]json.RawMessage) (Result, error) {
	var res Result
	for _, key := range []string{"title", "summary", "keyPoints", "tags"} {
		raw, ok := fields[key]
		if !ok || isNull(raw) {
			return Result{}, fmt.Errorf("%w - invalid response structure: missing %s", ErrExtraction, key)
		}
	}
	if err := json.Unmarshal(fields["title"], &res.Title); err != nil {
		return Result{}, fmt.Errorf("%w - invalid response structure: title: %v", ErrExtraction, err)
	}
	if err := json.Unmarshal(fields["summary"], &res.Summary); err != nil {
		return Result{}, fmt.Errorf("%w - invalid response structure: summary: %v", ErrExtraction, err)
	}
	if err := json.Unmarshal(fields["keyPoints"], &res.KeyPoints); err != nil {
		return Result{}, fmt.Errorf("%w - invalid response structure: keyPoints: %v", ErrExtraction, err)
	}
	if err := json.Unmarshal(fields["tags"], &res.Tags); err != nil {
		return Result{}, fmt.Errorf("%w - invalid response structure: tags: %v", ErrExtraction, err)
	}
	if res.Title == "" || res.Summary == "" {
		return Result{}, fmt.Errorf("%w - invalid response structure: empty title or summary", ErrExtraction)
	}
	return res, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
