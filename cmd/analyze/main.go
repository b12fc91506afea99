package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/duygulab/duyguflow/config"
	"github.com/duygulab/duyguflow/internal/clients"
	"github.com/duygulab/duyguflow/internal/logging"
	"github.com/duygulab/duyguflow/internal/sentiment"
)

// One-shot scoring for local inspection: analyze the text given on the
// command line and print the result as JSON.
func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: analyze <text>...")
		os.Exit(2)
	}
	text := strings.Join(os.Args[1:], " ")

	lex, err := sentiment.NewTurkishLexicon()
	if err != nil {
		slog.Error("[Analyze] Lexicon init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var opts []sentiment.Option
	if annotator := clients.GetAnnotatorClient(); annotator != nil {
		opts = append(opts, sentiment.WithAnnotator(annotator))
	}
	analyzer := sentiment.NewAnalyzer(lex, opts...)

	result := analyzer.Analyze(context.Background(), text)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		slog.Error("[Analyze] Failed to encode result", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(string(out))
}
