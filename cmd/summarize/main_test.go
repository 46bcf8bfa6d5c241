package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"summarizer-backend/internal/acquire"
	"summarizer-backend/internal/extract"
)

type passthrough struct{}

func (passthrough) Acquire(ctx context.Context, in acquire.Input) (string, error) {
	return in.Text, nil
}

type fixedExtractor struct{ res extract.Result }

func (f fixedExtractor) Extract(ctx context.Context, text string) (extract.Result, error) {
	return f.res, nil
}

var sample = extract.Result{Title: "T", Summary: "S", KeyPoints: []string{"k"}, Tags: []string{"go"}}

func TestInputFromFlags(t *testing.T) {
	in, err := inputFromFlags("", "-", "", strings.NewReader("from stdin"))
	if err != nil {
		t.Fatalf("inputFromFlags: %v", err)
	}
	if in.Kind != acquire.KindContent || in.Text != "from stdin" {
		t.Fatalf("unexpected input %+v", in)
	}
	if _, err := inputFromFlags("https://a.example", "", "text", nil); err == nil {
		t.Fatalf("expected error for two sources")
	}
	if _, err := inputFromFlags("", "", "", nil); err == nil {
		t.Fatalf("expected error for no source")
	}
}

func TestRunWritesJSONAndYAML(t *testing.T) {
	in := acquire.Input{Kind: acquire.KindContent, Text: strings.Repeat("w ", 201)}

	var jsonOut bytes.Buffer
	if err := run(context.Background(), in, passthrough{}, fixedExtractor{res: sample}, "json", &jsonOut); err != nil {
		t.Fatalf("run json: %v", err)
	}
	var decoded output
	if err := json.Unmarshal(jsonOut.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded.Title != "T" || decoded.ReadingTime != 2 || decoded.Source != "content" {
		t.Fatalf("unexpected output %+v", decoded)
	}

	var yamlOut bytes.Buffer
	if err := run(context.Background(), in, passthrough{}, fixedExtractor{res: sample}, "yaml", &yamlOut); err != nil {
		t.Fatalf("run yaml: %v", err)
	}
	var fromYAML output
	if err := yaml.Unmarshal(yamlOut.Bytes(), &fromYAML); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if fromYAML.Title != "T" || len(fromYAML.KeyPoints) != 1 {
		t.Fatalf("unexpected yaml output %+v", fromYAML)
	}

	if err := run(context.Background(), in, passthrough{}, fixedExtractor{res: sample}, "xml", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
