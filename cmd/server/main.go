package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/assistant"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/auth"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/bible"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/bookmarks"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/clips"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/config"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/kvstore"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/logger"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/onboarding"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/photos"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/plans"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/prayer"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/reader"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/social"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/streak"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/websocket"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/database"
)

// app bundles the feature stores and external clients the handlers need.
type app struct {
	cfg *config.Config
	log *logger.Logger
	db  *sql.DB

	bookmarks  *bookmarks.Store
	streak     *streak.Tracker
	onboarding *onboarding.Store
	planStore  *plans.Store
	reader     *reader.Store
	prayer     *prayer.Service
	profiles   *auth.ProfileCache

	bible     *bible.Client
	clips     *clips.Service
	assistant *assistant.Client
	social    *social.Client
	hub       *websocket.Hub
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New()
	if err != nil {
		logger.New(0).Fatal("load config", "error", err)
	}
	log := logger.New(cfg.LogLevel)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		log.Fatal("create data dir", "error", err)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("open database", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("run migrations", "error", err)
	}
	seedCatalog(log, db, cfg.SeedDir)

	kv := kvstore.New(db)
	ai := assistant.New(cfg.Assistant.BaseURL, cfg.Assistant.APIKey, cfg.Assistant.Model, cfg.Timeout)
	hub := websocket.NewHub(log)
	go hub.Run()

	a := &app{
		cfg: cfg,
		log: log,
		db:  db,

		bookmarks:  bookmarks.New(kv),
		streak:     streak.New(kv),
		onboarding: onboarding.New(kv),
		planStore:  plans.NewStore(kv),
		reader:     reader.New(kv),
		prayer:     prayer.New(kv, ai),
		profiles:   auth.NewProfileCache(kv),

		bible:     bible.New(cfg.Bible.BaseURL, cfg.Timeout),
		clips:     clips.NewService(photos.New(cfg.Photos.BaseURL, cfg.Photos.APIKey, cfg.Timeout), cfg.Photos.PerPage),
		assistant: ai,
		social:    social.New(cfg.Social.BaseURL, cfg.Social.AnonKey, cfg.Timeout),
		hub:       hub,
	}

	r := gin.Default()
	a.routes(r)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Info("HTTP API listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}

// seedCatalog loads the built-in plans and quizzes when the seed files are
// present. Already-seeded rows are left alone.
func seedCatalog(log *logger.Logger, db *sql.DB, dir string) {
	plansPath := filepath.Join(dir, "plans.json")
	if _, err := os.Stat(plansPath); err == nil {
		list, err := database.LoadPlansFromJSON(plansPath)
		if err != nil {
			log.Fatal("load plan seeds", "error", err)
		}
		n, err := database.SeedPlans(db, list)
		if err != nil {
			log.Fatal("seed plans", "error", err)
		}
		log.Info("seeded plans", "count", n)
	} else {
		log.Info("no plan seeds found, skipping", "path", plansPath)
	}

	quizzesPath := filepath.Join(dir, "quizzes.json")
	if _, err := os.Stat(quizzesPath); err == nil {
		list, err := database.LoadQuizzesFromJSON(quizzesPath)
		if err != nil {
			log.Fatal("load quiz seeds", "error", err)
		}
		n, err := database.SeedQuizzes(db, list)
		if err != nil {
			log.Fatal("seed quizzes", "error", err)
		}
		log.Info("seeded quizzes", "count", n)
	} else {
		log.Info("no quiz seeds found, skipping", "path", quizzesPath)
	}
}

func (a *app) routes(r *gin.Engine) {
	secret := []byte(a.cfg.JWT.Secret)

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// AUTH
	r.POST("/auth/google", a.handleGoogleLogin)
	r.POST("/auth/register", a.handleRegister)
	r.POST("/auth/login", a.handleLogin)

	// PUBLIC CONTENT
	// /votd sits outside /verses because the reference catch-all would
	// otherwise shadow it
	r.GET("/votd", a.handleVerseOfTheDay)
	r.GET("/verses/*reference", a.handlePassage)
	r.GET("/clips", a.handleClipFeed)
	r.GET("/plans", a.handleListPlans)
	r.GET("/plans/:id", a.handlePlanDetail)
	r.GET("/quizzes", a.handleListQuizzes)
	r.GET("/quizzes/:id", a.handleQuizDetail)
	r.GET("/topics", a.handleListTopics)
	r.GET("/topics/:name/verses", a.handleTopicVerses)
	r.GET("/community/clips", a.handleCommunityClips)

	// PROTECTED
	authed := r.Group("/")
	authed.Use(auth.RequireSession(secret))

	authed.POST("/auth/logout", a.handleLogout)
	authed.GET("/profile", a.handleProfile)

	authed.GET("/bookmarks/verses", a.handleListVerseBookmarks)
	authed.POST("/bookmarks/verses", a.handleAddVerseBookmark)
	authed.DELETE("/bookmarks/verses", a.handleRemoveVerseBookmark)
	authed.GET("/bookmarks/clips", a.handleListClipBookmarks)
	authed.POST("/bookmarks/clips", a.handleAddClipBookmark)
	authed.DELETE("/bookmarks/clips/:id", a.handleRemoveClipBookmark)

	authed.GET("/plans/saved", a.handleSavedPlans)
	authed.POST("/plans/saved", a.handleSavePlan)
	authed.DELETE("/plans/saved/:id", a.handleRemoveSavedPlan)
	authed.GET("/plans/progress", a.handleAllProgress)
	authed.POST("/plans/:id/start", a.handleStartPlan)
	authed.POST("/plans/:id/advance", a.handleAdvancePlan)

	authed.GET("/streak", a.handleStreak)
	authed.POST("/streak", a.handleStreakVisit)

	authed.GET("/onboarding", a.handleGetOnboarding)
	authed.POST("/onboarding/complete", a.handleCompleteOnboarding)
	authed.PATCH("/onboarding/name", a.handleUpdateOnboardingName)

	authed.GET("/reader/lastread", a.handleLastRead)
	authed.PUT("/reader/lastread", a.handleSetLastRead)

	authed.GET("/prayer/daily", a.handleDailyPrayer)
	authed.POST("/assistant/chat", a.handleChat)
	authed.POST("/community/clips", a.handlePublishClip)

	// websocket handshakes cannot set headers, token arrives as ?token=
	authed.GET("/ws", websocket.HandleChat(a.hub, a.assistant))
}
