package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/talencee/careers/internal/database"
	"github.com/talencee/careers/pkg/config"
	"github.com/talencee/careers/pkg/fsx"
	"github.com/talencee/careers/pkg/fsx/fsxlocal"
	"github.com/talencee/careers/pkg/fsx/fsxs3"
	"github.com/talencee/careers/pkg/iam/auth"
	"github.com/talencee/careers/pkg/logx"
	"github.com/talencee/careers/recruitment/application/applicationapi"
	"github.com/talencee/careers/recruitment/application/applicationinfra"
	"github.com/talencee/careers/recruitment/application/applicationsrv"
	"github.com/talencee/careers/recruitment/content/contentapi"
	"github.com/talencee/careers/recruitment/content/contentinfra"
	"github.com/talencee/careers/recruitment/content/contentsrv"
	"github.com/talencee/careers/recruitment/job"
	"github.com/talencee/careers/recruitment/job/jobapi"
	"github.com/talencee/careers/recruitment/job/jobinfra"
	"github.com/talencee/careers/recruitment/job/jobsrv"
	"github.com/talencee/careers/recruitment/notification"
	"github.com/talencee/careers/recruitment/notification/notificationinfra"
	"github.com/talencee/careers/recruitment/upload"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	Mailer     notification.Mailer

	// Services
	JobService         *jobsrv.JobService
	ContentService     *contentsrv.ContentService
	ApplicationService *applicationsrv.ApplicationService
	Dispatcher         *notification.Dispatcher

	// API Handlers
	JobHandlers         *jobapi.Handlers
	ContentHandlers     *contentapi.Handlers
	ApplicationHandlers *applicationapi.Handlers

	// Middleware
	AdminMiddleware fiber.Handler
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}
	if err := c.initInfrastructure(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initServices()
	c.initHandlers()
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	// 1. Database
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	c.DB = db
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		logx.Info("Database schema is up to date")
	}

	// 2. Redis (optional job cache)
	if cfg.Redis.Enabled() {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			logx.Warnf("Failed to connect to Redis, job lookups will hit the database: %v", err)
		}
	}

	// 3. Upload storage
	switch cfg.Upload.Backend {
	case config.BackendS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Upload.AWSRegion))
		if err != nil {
			return fmt.Errorf("unable to load AWS config: %w", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), cfg.Upload.S3Bucket, cfg.Upload.Root)
	default:
		c.FileSystem = fsxlocal.NewLocalFileSystem(cfg.Upload.Root)
	}

	// 4. Mail transport
	switch cfg.Mail.Transport {
	case config.TransportSMTP:
		c.Mailer = notificationinfra.NewSMTPMailer(notificationinfra.SMTPConfig{
			Host:     cfg.Mail.SMTPHost,
			Port:     cfg.Mail.SMTPPort,
			Username: cfg.Mail.SMTPUsername,
			Password: cfg.Mail.SMTPPassword,
			UseTLS:   cfg.Mail.SMTPUseTLS,
			Timeout:  cfg.Mail.Timeout,
		}, c.FileSystem)
	case config.TransportSES:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Mail.AWSRegion))
		if err != nil {
			return fmt.Errorf("unable to load AWS config: %w", err)
		}
		c.Mailer = notificationinfra.NewSESMailer(ses.NewFromConfig(awsCfg), c.FileSystem)
	default:
		logx.Warn("No mail transport configured, notifications will only be logged")
		c.Mailer = notificationinfra.LogMailer{}
	}

	return nil
}

func (c *Container) initServices() {
	cfg := c.Config

	var jobRepo job.Repository = jobinfra.NewPostgresJobRepository(c.DB)
	if c.Redis != nil {
		jobRepo = jobinfra.NewCachedJobRepository(jobRepo, c.Redis, cfg.Redis.JobCacheTTL)
	}

	c.JobService = jobsrv.NewJobService(jobRepo)
	c.ContentService = contentsrv.NewContentService(contentinfra.NewPostgresContentRepository(c.DB))

	c.Dispatcher = notification.NewDispatcher(c.Mailer, notification.Sender{
		From:         cfg.Mail.From,
		StaffAddress: cfg.Mail.StaffAddress,
		CompanyName:  cfg.Mail.CompanyName,
	}, cfg.Mail.Timeout)

	c.ApplicationService = applicationsrv.NewApplicationService(
		applicationinfra.NewPostgresApplicationRepository(c.DB),
		upload.NewAssigner(c.FileSystem, cfg.Upload.MaxFileSize),
		c.JobService,
		c.Dispatcher,
	)
}

func (c *Container) initHandlers() {
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.ContentHandlers = contentapi.NewHandlers(c.ContentService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.AdminMiddleware = auth.APIKeyMiddleware(c.Config.Auth.AdminAPIKey)
}

// LocalUploadRoot returns the directory served at the public upload path,
// or "" when uploads do not live on local disk
func (c *Container) LocalUploadRoot() string {
	if local, ok := c.FileSystem.(*fsxlocal.LocalFileSystem); ok {
		return local.Root()
	}
	return ""
}

// Close releases connections
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("Failed to close Redis: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Warnf("Failed to close database: %v", err)
		}
	}
}
