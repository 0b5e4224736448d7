package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/jeeprep/internal/domain"
	"github.com/example/jeeprep/internal/storage"
)

// Run iterates over all registered content sources and reconciles them
// into the topic collection.
func Run(db *storage.DB, reposDir string) error {
	slog.Info("Starting content sync for all sources...")
	sources, err := db.GetAllSources()
	if err != nil {
		return fmt.Errorf("failed to get sources: %w", err)
	}

	if len(sources) == 0 {
		slog.Info("No content sources configured")
		return nil
	}

	if err := os.MkdirAll(reposDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create repos directory: %w", err)
	}

	for _, source := range sources {
		slog.Info("Syncing source", "id", source.ID, "type", source.Type, "path", source.Path)

		sourceToReconcile := source

		if source.Type == "git" {
			localRepoPath, err := gitURLToLocalPath(reposDir, source.Path)
			if err != nil {
				slog.Error("Error determining local path for git repo", "url", source.Path, "error", err)
				continue
			}
			if err := SyncRepo(source.Path, localRepoPath); err != nil {
				slog.Error("Error syncing git repo", "url", source.Path, "error", err)
				continue
			}
			sourceToReconcile.Path = localRepoPath
		}

		reconcileLocalSource(db, &sourceToReconcile)
	}
	slog.Info("Content sync complete.")
	return nil
}

// reconcileLocalSource walks a source directory for deck files and
// creates any topic not yet imported. Topics are only ever added here:
// removing a deck entry never deletes the topic it created, because the
// recall counters on it are history the student has already earned.
func reconcileLocalSource(db *storage.DB, source *storage.Source) {
	var parsed, created int
	var syncErrors []error

	walkErr := filepath.WalkDir(source.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		entries, parseErr := ParseFile(path)
		if parseErr != nil {
			syncErrors = append(syncErrors, fmt.Errorf("parsing %s: %w", path, parseErr))
		}
		for _, entry := range entries {
			parsed++
			fp := Fingerprint(entry)

			existingID, findErr := db.FindTopicIDByFingerprint(fp)
			if findErr != nil {
				syncErrors = append(syncErrors, fmt.Errorf("fingerprint check for %q: %w", entry.Topic, findErr))
				continue
			}
			if existingID != "" {
				continue
			}

			topic, insertErr := db.CreateTopic(domain.TopicFields{
				Subject:     entry.Subject,
				ChapterName: entry.Chapter,
				TopicName:   entry.Topic,
				Hints:       entry.Hints,
			})
			if insertErr != nil {
				syncErrors = append(syncErrors, fmt.Errorf("creating topic %q: %w", entry.Topic, insertErr))
				continue
			}
			if fpErr := db.InsertFingerprint(fp, topic.ID, source.ID); fpErr != nil {
				syncErrors = append(syncErrors, fmt.Errorf("recording fingerprint for %q: %w", entry.Topic, fpErr))
				continue
			}
			slog.Info("New topic imported", "topic", entry.Topic, "subject", entry.Subject)
			created++
		}
		return nil
	})

	if walkErr != nil {
		slog.Error("Error walking directory", "path", source.Path, "error", walkErr)
		return
	}

	if err := db.UpdateSourceLastSynced(source.ID); err != nil {
		slog.Warn("Failed to update last synced for source", "source_id", source.ID, "error", err)
	}

	slog.Info("reconciliation complete",
		"path", source.Path,
		"parsed_entries", parsed,
		"created_topics", created,
		"errors", len(syncErrors),
	)
	for _, err := range syncErrors {
		slog.Warn("sync issue", "error", err)
	}
}

func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitizedPath), nil
}
