package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/auth"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

func (a *app) handleGoogleLogin(c *gin.Context) {
	var req struct {
		Credential string `json:"credential"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Credential == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "credential required"})
		return
	}

	profile, err := auth.DecodeGoogleCredential(req.Credential)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credential"})
		return
	}

	u, err := auth.UpsertFederatedUser(a.db, profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if err := a.profiles.Save(c.Request.Context(), u.ID, profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	token, err := auth.SignSession([]byte(a.cfg.JWT.Secret), u.ID, u.Name, a.cfg.JWT.TTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign token failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "profile": profile})
}

func (a *app) handleRegister(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email/password required"})
		return
	}

	u, err := auth.CreateUser(a.db, req.Email, req.Name, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
		return
	}

	token, err := auth.SignSession([]byte(a.cfg.JWT.Secret), u.ID, u.Name, a.cfg.JWT.TTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign token failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
}

func (a *app) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	u, err := auth.VerifyLogin(a.db, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := auth.SignSession([]byte(a.cfg.JWT.Secret), u.ID, u.Name, a.cfg.JWT.TTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign token failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// handleLogout forgets the cached profile and the onboarding record, the
// same state the original client clears when signing out.
func (a *app) handleLogout(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)
	ctx := c.Request.Context()

	if err := a.profiles.Remove(ctx, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if err := a.onboarding.Clear(ctx, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *app) handleProfile(c *gin.Context) {
	userID := c.GetString(auth.CtxUserIDKey)

	profile, ok, err := a.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if !ok {
		// local accounts have no federated profile; answer from the token
		profile = models.UserProfile{ID: userID, Name: c.GetString(auth.CtxNameKey)}
	}

	c.JSON(http.StatusOK, profile)
}
