// Command seed replaces the jobs and the site content with sample data.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/talencee/careers/internal/database"
	"github.com/talencee/careers/pkg/config"
	"github.com/talencee/careers/pkg/logx"
	"github.com/talencee/careers/recruitment/content"
	"github.com/talencee/careers/recruitment/content/contentinfra"
	"github.com/talencee/careers/recruitment/content/contentsrv"
	"github.com/talencee/careers/recruitment/job"
	"github.com/talencee/careers/recruitment/job/jobinfra"
	"github.com/talencee/careers/recruitment/job/jobsrv"
)

//go:embed seed.json
var seedData []byte

type seedFile struct {
	Content content.UpdateContentRequest `json:"content"`
	Jobs    []job.CreateJobRequest       `json:"jobs"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}
	logx.Configure(cfg.Logging.Level, cfg.Logging.Format)
	defer logx.Sync()

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logx.Fatalf("Failed to apply schema: %v", err)
	}

	jobs, err := seed(ctx, db, seedData)
	if err != nil {
		logx.Fatalf("Seeding failed: %v", err)
	}
	logx.Infof("Seeded site content and %d jobs", jobs)
}

// seed replaces existing rows and returns the number of jobs created
func seed(ctx context.Context, db *sqlx.DB, raw []byte) (int, error) {
	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return 0, fmt.Errorf("failed to parse seed data: %w", err)
	}

	contentService := contentsrv.NewContentService(contentinfra.NewPostgresContentRepository(db))
	if _, err := contentService.UpdateContent(ctx, data.Content); err != nil {
		return 0, fmt.Errorf("failed to seed content: %w", err)
	}

	jobService := jobsrv.NewJobService(jobinfra.NewPostgresJobRepository(db))
	created, err := jobService.ReplaceAll(ctx, data.Jobs)
	if err != nil {
		return 0, fmt.Errorf("failed to seed jobs: %w", err)
	}
	return len(created), nil
}
