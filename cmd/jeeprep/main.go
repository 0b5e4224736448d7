package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/example/jeeprep/internal/config"
	"github.com/example/jeeprep/internal/content"
	"github.com/example/jeeprep/internal/feedback"
	"github.com/example/jeeprep/internal/storage"
	"github.com/example/jeeprep/internal/web"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("jeeprep", pflag.ExitOnError)
	configPath := flags.String("config", "config.yaml", "Path to the YAML config file")
	flags.String("addr", "", "Listen address, e.g. :8080")
	flags.String("db_path", "", "Path to the SQLite database file")
	flags.String("repos_dir", "", "Directory git content sources are cloned into")
	flags.String("sync_every", "", "Periodic content sync interval, e.g. 45m (empty disables)")
	flags.String("access_key", "", "Key that unlocks the student area (empty leaves it open)")
	flags.String("admin_key", "", "Key that unlocks the admin area (empty disables it)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	var gen feedback.Generator
	if cfg.OpenAI.APIKey != "" {
		gen = feedback.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
		slog.Info("AI feedback enabled", "model", cfg.OpenAI.Model)
	}

	if interval := cfg.SyncInterval(); interval > 0 {
		scheduler := content.NewScheduler(db, cfg.ReposDir)
		if err := scheduler.Start(interval); err != nil {
			log.Fatalf("Failed to schedule content sync: %v", err)
		}
		defer scheduler.Stop()
		slog.Info("periodic content sync enabled", "every", interval)
	}

	server := web.NewServer(db, db, gen, web.Options{
		AccessKey:   cfg.AccessKey,
		AdminKey:    cfg.AdminKey,
		StudentName: cfg.StudentName,
		ReposDir:    cfg.ReposDir,
	})

	slog.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, server); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
