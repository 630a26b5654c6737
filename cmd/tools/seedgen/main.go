// seedgen authors devotional reading plans with the assistant API and
// merges them into the plan seed file consumed at server startup.
//
// Usage:
//
//	LEXI_ASSISTANT_API_KEY=... go run ./cmd/tools/seedgen -out data/plans.json forgiveness "walking in faith"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/assistant"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/config"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "plan"
	}
	return out
}

func loadExisting(path string) []models.Plan {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var existing []models.Plan
	if err := json.Unmarshal(raw, &existing); err != nil {
		panic(fmt.Errorf("%s is not a plan seed file: %w", path, err))
	}
	return existing
}

func main() {
	outPath := flag.String("out", "data/plans.json", "output json path")
	days := flag.Int("days", 7, "requested plan length in days")
	flag.Parse()

	themes := flag.Args()
	if len(themes) == 0 {
		fmt.Fprintln(os.Stderr, "usage: seedgen [-out path] [-days n] theme [theme...]")
		os.Exit(2)
	}

	cfg, err := config.New()
	if err != nil {
		panic(err)
	}
	if cfg.Assistant.APIKey == "" {
		fmt.Fprintln(os.Stderr, "LEXI_ASSISTANT_API_KEY is required")
		os.Exit(2)
	}

	ai := assistant.New(cfg.Assistant.BaseURL, cfg.Assistant.APIKey, cfg.Assistant.Model, cfg.Timeout)
	ctx := context.Background()

	out := loadExisting(*outPath)
	used := map[string]bool{}
	for _, p := range out {
		used[p.ID] = true
	}

	authored := 0
	for _, theme := range themes {
		request := fmt.Sprintf("Create a %d-day devotional reading plan about %s.", *days, theme)
		plan, err := ai.GeneratePlan(ctx, request)
		if err != nil {
			panic(fmt.Errorf("author plan for %q: %w", theme, err))
		}

		// seed plans carry stable slug ids, not generated ones
		id := slugify(plan.Title)
		for n := 2; used[id]; n++ {
			id = fmt.Sprintf("%s-%d", slugify(plan.Title), n)
		}
		used[id] = true
		plan.ID = id

		out = append(out, plan)
		authored++
		fmt.Printf("Authored %q (%d days) -> %s\n", plan.Title, len(plan.Content), id)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0755); err != nil {
		panic(err)
	}
	j, _ := json.MarshalIndent(out, "", "  ")
	if err := os.WriteFile(*outPath, j, 0644); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d plans (%d new) -> %s\n", len(out), authored, *outPath)
}
