package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medvault/booking-api/internal/auth"
	"github.com/medvault/booking-api/internal/store"
)

// GetDoctors lists approved doctors, optionally filtered by name or
// specialization.
func (h *Handler) GetDoctors(c *gin.Context) {
	doctors, err := h.Doctors.ListDoctors(c.Request.Context(), c.Query("query"))
	if err != nil {
		log.Printf("list doctors: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Doctors found", "data": doctors})
}

func (h *Handler) GetDoctor(c *gin.Context) {
	doctor, err := h.Doctors.DoctorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Doctor not found"})
			return
		}
		log.Printf("get doctor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "No doctor found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Doctor found", "data": doctor})
}

type UpdateDoctorRequest struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	Photo          *string `json:"photo"`
	Specialization *string `json:"specialization"`
	Bio            *string `json:"bio"`
	About          *string `json:"about"`
	TicketPrice    *int64  `json:"ticketPrice"`
	Password       *string `json:"password"`
}

// UpdateDoctor applies a partial profile update. Email is immutable; a new
// password is hashed before it reaches the store.
func (h *Handler) UpdateDoctor(c *gin.Context) {
	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	upd := store.DoctorUpdate{
		Name:           req.Name,
		Phone:          req.Phone,
		Photo:          req.Photo,
		Specialization: req.Specialization,
		Bio:            req.Bio,
		About:          req.About,
		TicketPrice:    req.TicketPrice,
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			log.Printf("update doctor: hashing failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update doctor"})
			return
		}
		upd.Password = &hashed
	}

	doctor, err := h.Doctors.UpdateDoctor(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Doctor not found"})
			return
		}
		log.Printf("update doctor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update doctor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Doctor updated successfully", "data": doctor})
}

// ApproveDoctor is the admin action that makes a doctor bookable.
func (h *Handler) ApproveDoctor(c *gin.Context) {
	doctor, err := h.Doctors.ApproveDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Doctor not found"})
			return
		}
		log.Printf("approve doctor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to approve doctor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Doctor approved successfully", "data": doctor})
}
