package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"macromind-server/internal/domain"
	"macromind-server/internal/repository"
	"macromind-server/internal/service"
	"macromind-server/internal/token"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	authSvc  service.AuthService
	profiles service.ProfileService
	cards    service.CardService
	tokens   *token.Service
	auth     repository.AuthRepository
	logger   *logrus.Logger
}

func NewHandler(authSvc service.AuthService, profiles service.ProfileService, cards service.CardService, tokens *token.Service, auth repository.AuthRepository, logger *logrus.Logger) *Handler {
	return &Handler{
		authSvc:  authSvc,
		profiles: profiles,
		cards:    cards,
		tokens:   tokens,
		auth:     auth,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/logout", h.authRequired(), h.logout)
			auth.POST("/refresh-token", h.refreshToken)
		}

		profile := api.Group("/profile", h.authRequired())
		{
			profile.GET("/me", h.getCurrentProfile)
			profile.POST("", h.createProfile)
			profile.GET("", h.listProfiles)
			profile.GET("/:id", h.getProfile)
			profile.PUT("/:id", h.updateProfile)
			profile.DELETE("/:id", h.deleteProfile)
		}

		cards := api.Group("/cards", h.authRequired())
		{
			cards.GET("", h.listCards)
			cards.POST("", h.createCard)
		}

		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusAccepted, gin.H{"ok": "ok"})
		})
	}
}

type registerRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Name        string   `json:"name"`
	PhoneNumber string   `json:"phoneNumber"`
	Preferences []string `json:"preferences"`
	Location    string   `json:"location"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logoutRequest struct {
	Email string `json:"email"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type userSummary struct {
	Email             string `json:"email"`
	Name              string `json:"name,omitempty"`
	IsProfileComplete bool   `json:"isProfileComplete"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Preferences: req.Preferences,
		Location:    req.Location,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user": userSummary{
			Email:             result.Email,
			Name:              result.Name,
			IsProfileComplete: true,
		},
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":      result.AccessToken,
		"refreshToken":     result.RefreshToken,
		"onboardingStatus": result.OnboardingStatus,
		"user": userSummary{
			Email:             result.Email,
			Name:              result.Name,
			IsProfileComplete: result.ProfileComplete,
		},
	})
}

func (h *Handler) logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) refreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

type profileRequest struct {
	Name        string   `json:"name"`
	PhoneNumber string   `json:"phoneNumber"`
	Preferences []string `json:"preferences"`
	Location    string   `json:"location"`
}

type ProfileResponse struct {
	ID          int64    `json:"id"`
	UserID      int64    `json:"userId"`
	Name        string   `json:"name"`
	PhoneNumber string   `json:"phoneNumber"`
	Email       string   `json:"email,omitempty"`
	Preferences []string `json:"preferences"`
	Location    string   `json:"location"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

func (h *Handler) createProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, ok := IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), identity.UserID, service.ProfileInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Preferences: req.Preferences,
		Location:    req.Location,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profileToResponse(*profile, ""))
}

func (h *Handler) getCurrentProfile(c *gin.Context) {
	identity, ok := IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.profiles.GetCurrent(c.Request.Context(), identity.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileToResponse(profile.Profile, profile.Email))
}

func (h *Handler) getProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileToResponse(*profile, ""))
}

func (h *Handler) listProfiles(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		resp[i] = profileToResponse(profiles[i], "")
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), id, service.ProfileUpdate{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Preferences: req.Preferences,
		Location:    req.Location,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileToResponse(*profile, ""))
}

func (h *Handler) deleteProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.profiles.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}

type cardRequest struct {
	Image     string `json:"image"`
	Data      string `json:"data"`
	IsLiked   string `json:"isLiked"`
	IsSkipped string `json:"isSkipped"`
}

type CardResponse struct {
	ID        int64  `json:"id"`
	Image     string `json:"image"`
	Data      string `json:"data"`
	IsLiked   string `json:"isLiked"`
	IsSkipped string `json:"isSkipped"`
	CreatedAt string `json:"createdAt"`
}

func (h *Handler) listCards(c *gin.Context) {
	cards, err := h.cards.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]CardResponse, len(cards))
	for i := range cards {
		resp[i] = cardToResponse(cards[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createCard(c *gin.Context) {
	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := h.cards.Create(c.Request.Context(), service.CardInput{
		Image:        req.Image,
		Data:         req.Data,
		LikedLabel:   req.IsLiked,
		SkippedLabel: req.IsSkipped,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cardToResponse(*card))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return 0, false
	}
	return id, true
}

// writeError maps service errors onto the status taxonomy. Unknown
// errors become a generic 500 so internals never leak to callers.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func profileToResponse(profile domain.Profile, email string) ProfileResponse {
	return ProfileResponse{
		ID:          profile.ID,
		UserID:      profile.UserID,
		Name:        profile.Name,
		PhoneNumber: profile.PhoneNumber,
		Email:       email,
		Preferences: profile.Preferences,
		Location:    profile.Location,
		CreatedAt:   profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   profile.UpdatedAt.Format(time.RFC3339),
	}
}

func cardToResponse(card domain.Card) CardResponse {
	return CardResponse{
		ID:        card.ID,
		Image:     card.Image,
		Data:      card.Data,
		IsLiked:   card.LikedLabel,
		IsSkipped: card.SkippedLabel,
		CreatedAt: card.CreatedAt.Format(time.RFC3339),
	}
}
