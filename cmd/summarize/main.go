package main

// Summarize one article without the HTTP server or a database:
//   go run ./cmd/summarize --url https://go.dev/blog/intro-generics
//   go run ./cmd/summarize --file post.txt --format yaml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"summarizer-backend/internal/acquire"
	"summarizer-backend/internal/extract"
	"summarizer-backend/internal/llm"
	openai "summarizer-backend/internal/llm/openai"
	"summarizer-backend/internal/shared/config"
	"summarizer-backend/internal/shared/telemetry"
)

type output struct {
	Source      string   `json:"source" yaml:"source"`
	Title       string   `json:"title" yaml:"title"`
	Summary     string   `json:"summary" yaml:"summary"`
	KeyPoints   []string `json:"keyPoints" yaml:"keyPoints"`
	Tags        []string `json:"tags" yaml:"tags"`
	ReadingTime int      `json:"readingTime" yaml:"readingTime"`
}

type contentAcquirer interface {
	Acquire(ctx context.Context, in acquire.Input) (string, error)
}

type extractor interface {
	Extract(ctx context.Context, text string) (extract.Result, error)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "summarize",
		Usage: "fetch or read an article and print its structured summary",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "article URL to fetch"},
			&cli.StringFlag{Name: "file", Usage: "read article text from a file (- for stdin)"},
			&cli.StringFlag{Name: "text", Usage: "article text"},
			&cli.StringFlag{Name: "format", Value: "json", Usage: "output format: json or yaml"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			level := cfg.LogLevel
			if c.Bool("quiet") {
				level = "error"
			}
			telemetry.Configure(level, "console")

			in, err := inputFromFlags(c.String("url"), c.String("file"), c.String("text"), c.App.Reader)
			if err != nil {
				return err
			}
			provider, err := llm.SelectProvider(llm.WithModel(os.Getenv, cfg.LLMModel))
			if err != nil {
				return err
			}
			client, err := openai.NewClient(provider, cfg.LLMTimeout)
			if err != nil {
				return err
			}
			return run(c.Context, in, acquire.New(cfg.FetchTimeout, cfg.FetchMaxBytes), &extract.Extractor{LLM: client}, c.String("format"), c.App.Writer)
		},
	}
}

func inputFromFlags(url, file, text string, stdin io.Reader) (acquire.Input, error) {
	set := 0
	for _, v := range []string{url, file, text} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	if set != 1 {
		return acquire.Input{}, errors.New("exactly one of --url, --file or --text is required")
	}
	switch {
	case url != "":
		return acquire.Input{Kind: acquire.KindURL, URL: url}, nil
	case file != "":
		var (
			data []byte
			err  error
		)
		if file == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			return acquire.Input{}, fmt.Errorf("read %s: %w", file, err)
		}
		return acquire.Input{Kind: acquire.KindContent, Text: string(data)}, nil
	default:
		return acquire.Input{Kind: acquire.KindContent, Text: text}, nil
	}
}

func run(ctx context.Context, in acquire.Input, a contentAcquirer, e extractor, format string, w io.Writer) error {
	text, err := a.Acquire(ctx, in)
	if err != nil {
		return err
	}
	res, err := e.Extract(ctx, text)
	if err != nil {
		return err
	}

	out := output{
		Source:      "content",
		Title:       res.Title,
		Summary:     res.Summary,
		KeyPoints:   res.KeyPoints,
		Tags:        res.Tags,
		ReadingTime: extract.ReadingTime(text),
	}
	if in.Kind == acquire.KindURL {
		out.Source = in.URL
	}

	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
