// Package api exposes the admin and read API over gin: health, pipeline
// triggers, slate upload and projection/matchup reads.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nbasharp/nba-sharp-go/internal/cache"
	"github.com/nbasharp/nba-sharp-go/internal/export"
	"github.com/nbasharp/nba-sharp-go/internal/services"
	"github.com/nbasharp/nba-sharp-go/internal/slate"
	"github.com/nbasharp/nba-sharp-go/internal/utils"
)

// Pinger is anything with a health check, used for readiness reporting.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Pipeline is the slice of the pipeline service the API triggers.
type Pipeline interface {
	Today() time.Time
	RunDailyUpdate(ctx context.Context) (*services.PipelineReport, error)
	RunProjections(ctx context.Context, gameDate time.Time) (*services.PipelineReport, error)
	RunFull(ctx context.Context) (*services.PipelineReport, error)
}

// MatchupBuilder rebuilds matchup records for a date on demand.
type MatchupBuilder interface {
	BuildForDate(ctx context.Context, gameDate time.Time) (int, error)
}

// SchedulerStatusReporter reports the cron scheduler's state.
type SchedulerStatusReporter interface {
	Status() services.SchedulerStatus
}

// Handlers carries the dependencies behind the HTTP surface.
type Handlers struct {
	db          Pinger
	redis       Pinger
	pipeline    Pipeline
	matchups    MatchupBuilder
	matchupRead services.MatchupStore
	projRead    services.ProjectionStore
	projCache   *cache.ProjectionCache
	slateLoader *slate.Loader
	slateCache  *cache.SlateCache
	scheduler   SchedulerStatusReporter
	logger      *logrus.Logger
}

// NewHandlers creates the API handler set.
func NewHandlers(
	db, redis Pinger,
	pipeline Pipeline,
	matchups MatchupBuilder,
	matchupRead services.MatchupStore,
	projRead services.ProjectionStore,
	projCache *cache.ProjectionCache,
	slateLoader *slate.Loader,
	slateCache *cache.SlateCache,
	scheduler SchedulerStatusReporter,
	logger *logrus.Logger,
) *Handlers {
	return &Handlers{
		db:          db,
		redis:       redis,
		pipeline:    pipeline,
		matchups:    matchups,
		matchupRead: matchupRead,
		projRead:    projRead,
		projCache:   projCache,
		slateLoader: slateLoader,
		slateCache:  slateCache,
		scheduler:   scheduler,
		logger:      logger,
	}
}

// gameDate resolves the optional ?date=YYYY-MM-DD query, defaulting to
// today's slate date.
func (h *Handlers) gameDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return h.pipeline.Today(), true
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}

func (h *Handlers) healthCheck(c *gin.Context) {
	status := "ok"
	dbStatus, redisStatus := "ok", "ok"

	if err := h.db.HealthCheck(c.Request.Context()); err != nil {
		dbStatus = "error"
		status = "degraded"
	}
	if err := h.redis.HealthCheck(c.Request.Context()); err != nil {
		redisStatus = "error"
		status = "degraded"
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now(),
		"services":  gin.H{"database": dbStatus, "redis": redisStatus},
	})
}

func (h *Handlers) triggerDailyUpdate(c *gin.Context) {
	report, err := h.pipeline.RunDailyUpdate(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Manual daily update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "report": report})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handlers) triggerMatchups(c *gin.Context) {
	gameDate, ok := h.gameDate(c)
	if !ok {
		return
	}
	rows, err := h.matchups.BuildForDate(c.Request.Context(), gameDate)
	if err != nil {
		h.logger.WithError(err).Error("Manual matchup build failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_date": gameDate.Format("2006-01-02"), "rows": rows})
}

func (h *Handlers) triggerProjections(c *gin.Context) {
	gameDate, ok := h.gameDate(c)
	if !ok {
		return
	}
	report, err := h.pipeline.RunProjections(c.Request.Context(), gameDate)
	if err != nil {
		h.logger.WithError(err).Error("Manual projection run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if report.SlateMissing {
		c.JSON(http.StatusConflict, gin.H{"error": "no slate uploaded for date", "report": report})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handlers) triggerFullPipeline(c *gin.Context) {
	report, err := h.pipeline.RunFull(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Manual full pipeline run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "report": report})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handlers) schedulerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.scheduler.Status())
}

// uploadSlate accepts the daily slate CSV as multipart form field "file",
// parses and filters it, and stores it for the date's projection runs.
func (h *Handlers) uploadSlate(c *gin.Context) {
	gameDate, ok := h.gameDate(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
		return
	}
	defer f.Close()

	res, err := h.slateLoader.Load(f)
	if err != nil {
		code := http.StatusBadRequest
		var vErr *utils.ValidationError
		if errors.As(err, &vErr) {
			code = http.StatusUnprocessableEntity
		}
		c.JSON(code, gin.H{"error": err.Error()})
		return
	}
	if err := h.slateCache.Save(c.Request.Context(), gameDate, res.Entries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game_date":         gameDate.Format("2006-01-02"),
		"entries":           len(res.Entries),
		"dropped_no_salary": res.DroppedNoSalary,
		"dropped_low_mins":  res.DroppedLowMins,
		"unmapped_teams":    res.UnmappedTeams,
	})
}

// getProjections serves the date's projection run, cache first, as JSON or
// CSV depending on ?format=.
func (h *Handlers) getProjections(c *gin.Context) {
	gameDate, ok := h.gameDate(c)
	if !ok {
		return
	}

	rows, err := h.projCache.Load(c.Request.Context(), gameDate)
	if errors.Is(err, cache.ErrNotFound) {
		rows, err = h.projRead.ForDate(c.Request.Context(), gameDate)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no projections for date"})
		return
	}

	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="projections_`+gameDate.Format("2006-01-02")+`.csv"`)
		if err := export.WriteCSV(c.Writer, rows); err != nil {
			h.logger.WithError(err).Error("Projection CSV export failed")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_date": gameDate.Format("2006-01-02"), "projections": rows})
}

func (h *Handlers) getMatchups(c *gin.Context) {
	gameDate, ok := h.gameDate(c)
	if !ok {
		return
	}
	rows, err := h.matchupRead.ForDate(c.Request.Context(), gameDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no matchups for date"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_date": gameDate.Format("2006-01-02"), "matchups": rows})
}
