// Command analyzer scrapes social-media post URLs and classifies their
// content for opportunity signals.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dipu67/analyzer/internal/analyzer"
	"github.com/dipu67/analyzer/internal/config"
	"github.com/dipu67/analyzer/internal/notifier"
	"github.com/dipu67/analyzer/internal/pipeline"
	"github.com/dipu67/analyzer/internal/scheduler"
	"github.com/dipu67/analyzer/internal/scraper"
	"github.com/dipu67/analyzer/internal/store"
	"github.com/dipu67/analyzer/internal/types"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := loadConfig()

	switch os.Args[1] {
	case "analyze":
		if len(os.Args) < 3 {
			fmt.Println("Usage: analyzer analyze <url> [url...]")
			os.Exit(1)
		}
		runAnalyze(cfg, os.Args[2:])
	case "watch":
		runWatch(cfg)
	case "history":
		runHistory(cfg)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: analyzer <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  analyze <url...>  Scrape the post URLs and print the opportunity report")
	fmt.Println("  watch             Run configured watchlists on their cron schedules")
	fmt.Println("  history           Show recent report history")
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// First run - create default config
			cfg = config.Default()
			cfg.ApplyEnv()
			if err := cfg.Save(); err != nil {
				log.Printf("Warning: could not save default config: %v", err)
			} else {
				path, _ := config.ConfigPath()
				log.Printf("Created default config at: %s", path)
			}
		} else {
			log.Printf("Warning: could not load config: %v (using defaults)", err)
			cfg = config.Default()
			cfg.ApplyEnv()
		}
	}
	return cfg
}

func buildPipeline(cfg *config.Config) *pipeline.Pipeline {
	a, err := analyzer.New(cfg.Analysis)
	if err != nil {
		log.Fatalf("Failed to create analyzer: %v", err)
	}
	return pipeline.New(scraper.New(cfg.Scrape), a)
}

func openStore(cfg *config.Config) *store.Store {
	path := cfg.Store.Path
	if path == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			log.Fatalf("Failed to resolve data dir: %v", err)
		}
		path = filepath.Join(dir, "analyzer.db")
	}

	st, err := store.New(path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	return st
}

func runAnalyze(cfg *config.Config, urls []string) {
	st := openStore(cfg)
	defer st.Close()

	p := buildPipeline(cfg)
	result, posts := p.RunDetailed(context.Background(), urls)

	if id, err := st.SaveReport(result, posts); err != nil {
		log.Printf("Failed to save report: %v", err)
	} else {
		log.Printf("Saved report %s", id)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))

	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		publish(cfg, "", result)
	}

	if !result.Success {
		os.Exit(1)
	}
}

func runWatch(cfg *config.Config) {
	if len(cfg.Watchlists) == 0 {
		log.Fatal("No watchlists configured")
	}

	st := openStore(cfg)
	defer st.Close()

	p := buildPipeline(cfg)

	runner := func(ctx context.Context, list config.WatchlistConfig) (types.BatchResult, error) {
		result, posts := p.RunDetailed(ctx, list.URLs)

		if id, err := st.SaveReport(result, posts); err != nil {
			log.Printf("Failed to save report for %s: %v", list.Name, err)
		} else {
			log.Printf("Saved report %s for %s", id, list.Name)
		}

		if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
			publish(cfg, list.Name, result)
		}

		if !result.Success {
			return result, fmt.Errorf("batch failed: %s", result.Error)
		}
		return result, nil
	}

	s := scheduler.New(runner)
	for _, list := range cfg.Watchlists {
		if err := s.AddWatchlist(list); err != nil {
			log.Fatalf("Failed to schedule %s: %v", list.Name, err)
		}
	}
	s.Start()
	log.Printf("Watching %d watchlist(s)...", len(cfg.Watchlists))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	<-s.Stop().Done()
}

func runHistory(cfg *config.Config) {
	st := openStore(cfg)
	defer st.Close()

	reports, err := st.RecentReports(20)
	if err != nil {
		log.Fatalf("Failed to read history: %v", err)
	}
	if len(reports) == 0 {
		fmt.Println("No reports yet")
		return
	}

	for _, r := range reports {
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		fmt.Printf("%s  %-28s score=%-2d opportunity=%-5t posts=%-3d %s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Category, r.PotentialScore,
			r.HasOpportunity, r.TotalPosts, status, r.ID)
	}
}

func publish(cfg *config.Config, name string, result types.BatchResult) {
	msg, err := notifier.BuildReportMessage(name, result)
	if err != nil {
		log.Printf("Failed to build report message: %v", err)
		return
	}

	t := notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err := t.Publish(context.Background(), msg); err != nil {
		log.Printf("Failed to publish report: %v", err)
	}
}
