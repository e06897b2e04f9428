package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medvault/booking-api/internal/auth"
	"github.com/medvault/booking-api/internal/identity"
	"github.com/medvault/booking-api/internal/models"
	"github.com/medvault/booking-api/internal/store"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Photo    string `json:"photo"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
}

// Signup registers a patient account. Only patients self-register.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	_, err := h.Patients.UserByEmail(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User already exists"})
		return
	case !errors.Is(err, store.ErrNotFound):
		log.Printf("signup: email lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error, Try again"})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("signup: hashing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error, Try again"})
		return
	}

	user := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     models.RolePatient,
		Photo:    req.Photo,
		Gender:   req.Gender,
		Phone:    req.Phone,
	}
	if err := h.Patients.InsertUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User already exists"})
			return
		}
		log.Printf("signup: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error, Try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User registered successfully"})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login resolves the email across the three account classes in precedence
// order and, on a password match, returns a signed token carrying the role
// of whichever class matched.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	acct, err := h.Resolver.ByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, identity.ErrNoAccount) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		log.Printf("login: resolve failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to login"})
		return
	}

	// Never reveal whether the email or the password was wrong.
	if !auth.CheckPassword(req.Password, acct.PasswordHash) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := h.Issuer.Issue(acct.ID, acct.Role)
	if err != nil {
		log.Printf("login: token issue failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successfully logged in",
		"token":   token,
		"role":    acct.Role,
		"data": gin.H{
			"id":    acct.ID,
			"name":  acct.Name,
			"email": acct.Email,
		},
	})
}

type TokenByIDRequest struct {
	ID string `json:"id" binding:"required"`
}

// TokenByID mints a token for a known principal id, searching every account
// class. Service-to-service use only; the route is not exposed to browsers.
func (h *Handler) TokenByID(c *gin.Context) {
	var req TokenByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	acct, err := h.Resolver.SearchByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, identity.ErrNoAccount) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		log.Printf("token-by-id: resolve failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error, Try again"})
		return
	}

	token, err := h.Issuer.Issue(acct.ID, acct.Role)
	if err != nil {
		log.Printf("token-by-id: token issue failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error, Try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}
