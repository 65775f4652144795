package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"ogstudio/internal/config"
	"ogstudio/internal/models"
	"ogstudio/internal/params"
	"ogstudio/internal/service"
	"ogstudio/pkg/logger"
)

type job struct {
	name string
	card models.Card
}

func main() {
	configPath := flag.String("config", "./configs/config.yaml", "Path to config file")
	query := flag.String("query", "", "Query string to render, e.g. \"title=Hello&theme=light\"")
	inputFile := flag.String("input", "", "Path to JSON file containing a list of query strings")
	presets := flag.Bool("presets", false, "Render every built-in preset")
	format := flag.String("format", "png", "Output format: png or svg")
	outputDir := flag.String("output", "out", "Output directory for rendered cards")
	flag.Parse()

	if err := run(*configPath, *query, *inputFile, *presets, service.Format(*format), *outputDir); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(configPath, query, inputFile string, presets bool, format service.Format, outputDir string) error {
	if format != service.FormatPNG && format != service.FormatSVG {
		return fmt.Errorf("unsupported format %q", format)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	jobs, err := collectJobs(query, inputFile, presets)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("nothing to render: pass -query, -input or -presets")
	}

	og, err := service.New(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx := context.Background()
	failed := 0
	for i, j := range jobs {
		fmt.Printf("[%d/%d] Rendering %s...\n", i+1, len(jobs), j.name)

		res := og.RenderCard(ctx, j.card, format)
		if res.Fallback {
			log.Printf("  -> Rendering failed, fallback card written")
			failed++
		}

		path := filepath.Join(outputDir, fmt.Sprintf("%s.%s", j.card.FileName(), format))
		if err := os.WriteFile(path, res.Body, 0o644); err != nil {
			log.Printf("  -> Failed to write %s: %v", path, err)
			failed++
			continue
		}
		fmt.Printf("  -> %s (%dx%d)\n", path, res.Width, res.Height)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d cards failed", failed, len(jobs))
	}
	return nil
}

func collectJobs(query, inputFile string, presets bool) ([]job, error) {
	var jobs []job

	if query != "" {
		q, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse query: %w", err)
		}
		jobs = append(jobs, job{name: "query", card: params.Normalize(q)})
	}

	if inputFile != "" {
		queries, err := readInputQueries(inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		for i, raw := range queries {
			q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
			if err != nil {
				log.Printf("  -> Skipping invalid query #%d: %v", i+1, err)
				continue
			}
			jobs = append(jobs, job{name: fmt.Sprintf("%s #%d", inputFile, i+1), card: params.Normalize(q)})
		}
	}

	if presets {
		for _, p := range params.Presets() {
			jobs = append(jobs, job{name: "preset " + p.Name, card: p.Card})
		}
	}
	return jobs, nil
}

func readInputQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var queries []string
	if err := json.NewDecoder(f).Decode(&queries); err != nil {
		return nil, err
	}
	return queries, nil
}
