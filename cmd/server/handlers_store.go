package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/auth"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/onboarding"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

// BOOKMARKS

func (a *app) handleListVerseBookmarks(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)

	refs, err := a.bookmarks.Verses(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"references": refs})
}

func (a *app) handleAddVerseBookmark(c *gin.Context) {
	var req struct {
		Reference string `json:"reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference required"})
		return
	}
	userID := c.GetString(auth.CtxUserIDKey)

	if err := a.bookmarks.AddVerse(c.Request.Context(), userID, req.Reference); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// verse references carry spaces and colons, so removal takes the
// reference as a query parameter rather than a path segment
func (a *app) handleRemoveVerseBookmark(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference required"})
		return
	}
	userID := c.GetString(auth.CtxUserIDKey)

	if err := a.bookmarks.RemoveVerse(c.Request.Context(), userID, reference); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *app) handleListClipBookmarks(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)

	list, err := a.bookmarks.Clips(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clips": list})
}

func (a *app) handleAddClipBookmark(c *gin.Context) {
	var clip models.Clip
	if err := c.ShouldBindJSON(&clip); err != nil || clip.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clip with id required"})
		return
	}
	userID := c.GetString(auth.CtxUserIDKey)

	if err := a.bookmarks.AddClip(c.Request.Context(), userID, clip); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *app) handleRemoveClipBookmark(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)

	if err := a.bookmarks.RemoveClip(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SAVED PLANS & PROGRESS

func (a *app) handleSavedPlans(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)

	list, err := a.planStore.Saved(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": list})
}

func (a *app) handleSavePlan(c *gin.Context) {
	var plan models.Plan
	if err := c.ShouldBindJSON(&plan); err != nil || plan.ID == "" || plan.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan with id and title required"})
		return
	}
	userID := c.GetString(auth.CtxUserIDKey)

	if err := a.planStore.Save(c.Request.Context(), userID, plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *app) handleRemoveSavedPlan(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)

	if err := a.planStore.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *app) handleAllProgress(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)

	all, err := a.planStore.AllProgress(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": all})
}

func (a *app) handleStartPlan(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)
	planID := c.Param("id")

	if _, err := a.resolveTotalDays(c, userID, planID); err != nil {
		if errors.Is(err, errPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	progress, err := a.planStore.Start(c.Request.Context(), userID, planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (a *app) handleAdvancePlan(c *gin.Context) {
	var req struct {
		FromDay int `json:"fromDay"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.FromDay <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fromDay required"})
		return
	}
	userID := c.GetString(auth.CtxUserIDKey)
	planID := c.Param("id")

	totalDays, err := a.resolveTotalDays(c, userID, planID)
	if err != nil {
		if errors.Is(err, errPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	progress, err := a.planStore.Advance(c.Request.Context(), userID, planID, req.FromDay, totalDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, progress)
}

// STREAK

func (a *app) handleStreak(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)

	data, err := a.streak.Current(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (a *app) handleStreakVisit(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)

	data, err := a.streak.Touch(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// ONBOARDING

func (a *app) handleGetOnboarding(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)

	data, err := a.onboarding.Get(c.Request.Context(), userID)
	if errors.Is(err, onboarding.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "onboarding not started"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (a *app) handleCompleteOnboarding(c *gin.Context) {
	var partial models.OnboardingData
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	userID := c.GetString(auth.CtxUserIDKey)

	// the signed-in display name backfills a missing onboarding name
	displayName := c.GetString(auth.CtxNameKey)
	if profile, ok, err := a.profiles.Get(c.Request.Context(), userID); err == nil && ok {
		displayName = profile.Name
	}

	data, err := a.onboarding.Complete(c.Request.Context(), userID, partial, displayName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (a *app) handleUpdateOnboardingName(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	userID := c.GetString(auth.CtxUserIDKey)

	if err := a.onboarding.UpdateName(c.Request.Context(), userID, req.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// READER

func (a *app) handleLastRead(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)

	pos, err := a.reader.LastRead(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, pos)
}

func (a *app) handleSetLastRead(c *gin.Context) {
	var pos models.LastRead
	if err := c.ShouldBindJSON(&pos); err != nil || pos.Book == "" || pos.Chapter <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "book and chapter required"})
		return
	}
	userID := c.GetString(auth.CtxUserIDKey)

	if err := a.reader.SetLastRead(c.Request.Context(), userID, pos); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
