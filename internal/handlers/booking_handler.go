package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medvault/booking-api/internal/booking"
	"github.com/medvault/booking-api/internal/middleware"
	"github.com/medvault/booking-api/internal/payments"
)

type CheckoutRequest struct {
	Date string `json:"date" binding:"required"` // 2006-01-02
	Time string `json:"time" binding:"required"` // 15:04
}

// Checkout creates a payment session and a pending booking for the
// authenticated patient against the doctor in the path.
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.Bookings.Checkout(c.Request.Context(), booking.CheckoutRequest{
		DoctorID:  c.Param("doctorId"),
		PatientID: c.GetString(middleware.CtxUserID),
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrDoctorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Doctor not found"})
		case errors.Is(err, booking.ErrPatientNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized user"})
		case errors.Is(err, booking.ErrInvalidSchedule):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot select date and time in the past"})
		case errors.Is(err, booking.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "This time slot is already booked"})
		case errors.Is(err, payments.ErrCheckoutFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating checkout session"})
		default:
			log.Printf("checkout: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating checkout session"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successfully created checkout session",
		"session": result.Session,
		"booking": result.Booking,
	})
}

// CompleteAppointment marks a pending booking completed.
func (h *Handler) CompleteAppointment(c *gin.Context) {
	b, err := h.Bookings.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.transitionError(c, err, "Error completing the appointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Appointment completed successfully",
		"booking": b,
	})
}

// CancelAppointment marks a pending booking cancelled.
func (h *Handler) CancelAppointment(c *gin.Context) {
	b, err := h.Bookings.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.transitionError(c, err, "Error cancelling the appointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Appointment cancelled successfully",
		"booking": b,
	})
}

func (h *Handler) transitionError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Appointment already completed or cancelled"})
	default:
		log.Printf("booking transition: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fallback})
	}
}

// GetAppointments lists the authenticated patient's bookings with doctor
// summaries. An empty list is a normal 200.
func (h *Handler) GetAppointments(c *gin.Context) {
	bookings, err := h.Bookings.ListForPatient(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		log.Printf("list appointments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Appointments fetched successfully",
		"data":    bookings,
	})
}
