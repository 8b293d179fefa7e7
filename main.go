package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"feed-beep/config"
	"feed-beep/models"
	"feed-beep/providers"
	"feed-beep/providers/gemini"
	"feed-beep/providers/gnews"
	"feed-beep/providers/newsdata"
	"feed-beep/services"
	"feed-beep/storage"
)

// defaultTopics are used by the scheduled trigger.
var defaultTopics = []string{"technology", "ai", "startup", "innovation"}

var (
	pipelineRunsCounter   prometheus.Counter
	articlesSavedCounter  prometheus.Counter
	pipelineErrorsCounter prometheus.Counter
)

func init() {
	pipelineRunsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_runs_total",
		Help: "Total number of pipeline runs.",
	})
	articlesSavedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "articles_saved_total",
		Help: "Total number of new articles saved to the database.",
	})
	pipelineErrorsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_item_errors_total",
		Help: "Total number of per-article pipeline errors.",
	})
	prometheus.MustRegister(pipelineRunsCounter, articlesSavedCounter, pipelineErrorsCounter)
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	store, err := storage.NewGormStore(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to article database", zap.Error(err))
	}
	logging.Info("Successfully connected to article database.")

	var s3Client *s3.Client
	if cfg.ArchiveEnabled() {
		s3Client, err = storage.NewS3Client(cfg)
		if err != nil {
			logging.Fatal("S3 client creation failed", zap.Error(err))
		}
		logging.Info("Article archive enabled", zap.String("bucket", cfg.ArchiveS3Bucket))
	}

	// Feed providers, tried in configured order; first success wins.
	var enabledProviders []providers.Provider
	for _, name := range strings.Split(cfg.EnabledProviders, ",") {
		switch strings.TrimSpace(name) {
		case "newsdata":
			enabledProviders = append(enabledProviders, newsdata.NewFetcher(cfg, logging))
		case "gnews":
			enabledProviders = append(enabledProviders, gnews.NewFetcher(cfg, logging))
		default:
			logging.Warn("Unknown provider in config", zap.String("provider_name", name))
		}
	}
	if len(enabledProviders) == 0 {
		logging.Fatal("No valid providers enabled. Check ENABLED_PROVIDERS in .env")
	}

	limiter := services.NewRateLimiter(cfg.RateLimitMaxRequests,
		time.Duration(cfg.RateLimitWindowMs)*time.Millisecond)
	monitor := services.NewMonitor(logging)
	writer := services.NewArticleWriter(cfg, store, s3Client, logging)
	rewriter := services.NewRewriteService(gemini.NewClient(cfg, logging), limiter, logging)

	pipeline := services.NewPipeline(services.PipelineDeps{
		Source:   providers.NewChain(logging, enabledProviders...),
		Scraper:  services.NewScraper(cfg, logging),
		Rewriter: rewriter,
		Writer:   writer,
		Limiter:  limiter,
		Monitor:  monitor,
		Store:    store,
		Logger:   logging,
	})

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(apiKeyAuthMiddleware(cfg))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupPipelineRoutes(router, pipeline, monitor, logging)
	setupArticleRoutes(router, store.DB(), logging)

	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.CronSchedule, func() {
		logging.Info("Running scheduled pipeline job...")
		result, err := pipeline.Run(context.Background(), defaultTopics, "en")
		if err != nil {
			logging.Error("Scheduled pipeline run failed", zap.Error(err))
			return
		}
		recordRunMetrics(result)
		logging.Info("Scheduled pipeline run completed",
			zap.Int("saved", result.Saved), zap.Int("errors", len(result.Errors)))
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func recordRunMetrics(result *models.PipelineResult) {
	pipelineRunsCounter.Inc()
	articlesSavedCounter.Add(float64(result.Saved))
	pipelineErrorsCounter.Add(float64(len(result.Errors)))
}

func setupPipelineRoutes(router *gin.Engine, pipeline *services.Pipeline, monitor *services.Monitor, log *zap.Logger) {
	rg := router.Group("/pipeline")

	// POST - Manual batch trigger
	rg.POST("/run", func(c *gin.Context) {
		var req struct {
			Topics   []string `json:"topics"`
			Language string   `json:"language"`
		}
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
				return
			}
		}
		if len(req.Topics) == 0 {
			req.Topics = []string{"technology", "ai"}
		}
		if req.Language == "" {
			req.Language = "en"
		}

		result, err := pipeline.Run(c.Request.Context(), req.Topics, req.Language)
		if err != nil {
			log.Error("Manual pipeline run failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Pipeline failed",
				"error":   err.Error(),
			})
			return
		}
		recordRunMetrics(result)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Pipeline completed successfully",
			"result":  result,
		})
	})

	// POST - Single-article test path
	rg.POST("/article", func(c *gin.Context) {
		var req struct {
			Article models.RawItem `json:"article"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Article data is required"})
			return
		}

		saved, err := pipeline.ProcessSingle(c.Request.Context(), req.Article)
		if err != nil {
			if errors.Is(err, services.ErrInvalidArticle) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
				return
			}
			log.Error("Single article processing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		if saved == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "duplicate": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "result": saved})
	})

	// GET - Collaborator health
	rg.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, pipeline.Status(c.Request.Context()))
	})

	// GET - Cumulative run metrics
	rg.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, monitor.Metrics())
	})
}

func setupArticleRoutes(router *gin.Engine, db *gorm.DB, log *zap.Logger) {
	rg := router.Group("/articles")

	rg.GET("/", func(c *gin.Context) {
		var articles []models.Article
		if err := db.Order("created_at desc").Limit(100).Find(&articles).Error; err != nil {
			log.Error("Database query for articles failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, articles)
	})

	rg.GET("/:id", func(c *gin.Context) {
		id := c.Param("id")
		var article models.Article
		if err := db.Where("id = ?", id).First(&article).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
				return
			}
			log.Error("Database error while fetching article", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, article)
	})

	// POST - Query articles with filters
	rg.POST("/query", func(c *gin.Context) {
		type ArticleQuery struct {
			Source       string `json:"source"`
			QualityLevel string `json:"quality_level"`
			MinScore     *int   `json:"min_score"`
			AiGenerated  *bool  `json:"ai_generated"`
			Limit        int    `json:"limit"`
		}

		var req ArticleQuery
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		query := db.Model(&models.Article{})
		if req.Source != "" {
			query = query.Where("source = ?", req.Source)
		}
		if req.QualityLevel != "" {
			query = query.Where("quality_level = ?", req.QualityLevel)
		}
		if req.MinScore != nil {
			query = query.Where("quality_score >= ?", *req.MinScore)
		}
		if req.AiGenerated != nil {
			query = query.Where("ai_generated = ?", *req.AiGenerated)
		}
		if req.Limit > 0 {
			query = query.Limit(req.Limit)
		}

		var articles []models.Article
		if err := query.Order("created_at desc").Find(&articles).Error; err != nil {
			log.Error("Database query for articles failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, articles)
	})
}
