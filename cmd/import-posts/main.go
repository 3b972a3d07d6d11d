// Command import-posts loads markdown files with YAML front matter into the
// posts table. Existing posts with the same slug are replaced.
//
//	import-posts ./content/posts
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/portfolio-site/backend/internal/config"
	"github.com/portfolio-site/backend/internal/database"
	"github.com/portfolio-site/backend/internal/logger"
	"github.com/portfolio-site/backend/internal/repository"
	"github.com/portfolio-site/backend/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: import-posts <dir>")
		os.Exit(1)
	}
	dir := os.Args[1]

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	posts := service.NewPostService(repository.NewPostRepository(pool), log)

	var imported, failed int
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		doc, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		post, err := posts.Import(ctx, d.Name(), string(doc))
		if err != nil {
			failed++
			log.Error().Err(err).Str("file", path).Msg("Import failed")
			return nil
		}
		imported++
		log.Info().Str("file", path).Str("slug", post.Slug).Bool("public", post.IsPublic).Msg("Imported")
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("Walk failed")
	}

	log.Info().Int("imported", imported).Int("failed", failed).Msg("Done")
	if failed > 0 {
		os.Exit(1)
	}
}
