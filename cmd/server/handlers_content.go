package main

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/assistant"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/auth"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/clips"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/plans"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/quiz"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

func (a *app) handleVerseOfTheDay(c *gin.Context) {
	p, err := a.bible.VerseOfTheDay(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "scripture service unavailable"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *app) handlePassage(c *gin.Context) {
	reference := strings.TrimPrefix(c.Param("reference"), "/")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference required"})
		return
	}

	p, err := a.bible.Passage(c.Request.Context(), reference)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "scripture service unavailable"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *app) handleClipFeed(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)

	feed, err := a.clips.Feed(c.Request.Context(), page)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "photo service unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clips": feed, "page": page})
}

func (a *app) handleListPlans(c *gin.Context) {
	list, err := plans.ListCatalog(a.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": list})
}

func (a *app) handlePlanDetail(c *gin.Context) {
	p, err := plans.GetCatalogPlan(a.db, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *app) handleListQuizzes(c *gin.Context) {
	list, err := quiz.List(a.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": list})
}

func (a *app) handleQuizDetail(c *gin.Context) {
	q, err := quiz.GetByID(a.db, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return
	}
	c.JSON(http.StatusOK, q)
}

func (a *app) handleListTopics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"topics": clips.Topics})
}

func (a *app) handleTopicVerses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"verses": clips.VersesForTopic(c.Param("name"))})
}

func (a *app) handleCommunityClips(c *gin.Context) {
	if !a.social.Enabled() {
		c.JSON(http.StatusOK, gin.H{"clips": []models.CommunityClip{}})
		return
	}

	list, err := a.social.ListClips(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "community feed unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clips": list})
}

func (a *app) handlePublishClip(c *gin.Context) {
	if !a.social.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "community feed not configured"})
		return
	}

	var req struct {
		ImageURL       string `json:"image_url"`
		VerseText      string `json:"verse_text"`
		VerseReference string `json:"verse_reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ImageURL == "" || req.VerseReference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_url/verse_reference required"})
		return
	}

	userID := c.GetString(auth.CtxUserIDKey)
	clip := models.CommunityClip{
		ID:             uuid.NewString(),
		UserID:         userID,
		UserName:       c.GetString(auth.CtxNameKey),
		ImageURL:       req.ImageURL,
		VerseText:      req.VerseText,
		VerseReference: req.VerseReference,
	}
	if profile, ok, err := a.profiles.Get(c.Request.Context(), userID); err == nil && ok {
		clip.UserName = profile.Name
		clip.UserPicture = profile.Picture
	}

	if err := a.social.PublishClip(c.Request.Context(), clip); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "community feed unavailable"})
		return
	}
	a.hub.ClipPublished(clip)

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (a *app) handleDailyPrayer(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)

	p, err := a.prayer.Daily(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// handleChat runs a single assistant turn. Conversational history lives on
// the websocket surface; this endpoint is one-shot.
func (a *app) handleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message required"})
		return
	}

	session := a.assistant.NewSession()
	defer session.Close()

	reply, err := session.Send(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, assistant.ErrUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "assistant unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assistant error"})
		return
	}

	resp := models.ChatResponse{Role: "model"}
	switch r := reply.(type) {
	case assistant.PlanReply:
		resp.Plan = &r.Plan
		resp.Text = "I've put together a plan for you: " + r.Plan.Title
	case assistant.TextReply:
		resp.Text = r.Text
	}
	c.JSON(http.StatusOK, resp)
}

var errPlanNotFound = errors.New("plan not found")

// resolveTotalDays finds a plan's length, preferring the user's saved copy
// over the shared catalog so assistant-authored plans resolve too. A plan
// known to neither yields errPlanNotFound; any other error is a storage
// failure the caller must not mistake for a missing plan.
func (a *app) resolveTotalDays(c *gin.Context, userID, planID string) (int, error) {
	p, ok, err := a.planStore.GetSaved(c.Request.Context(), userID, planID)
	if err != nil {
		return 0, err
	}
	if ok {
		return len(p.Content), nil
	}
	p, err = plans.GetCatalogPlan(a.db, planID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errPlanNotFound
	}
	if err != nil {
		return 0, err
	}
	return len(p.Content), nil
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
