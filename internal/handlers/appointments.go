package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medisphere-server/internal/middleware"
	"medisphere-server/internal/models"
	"medisphere-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB *gorm.DB
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db}
}

// AppointmentRequest represents the request body for booking or editing an appointment.
type AppointmentRequest struct {
	DoctorName string `json:"doctorName" binding:"required"`
	Specialty  string `json:"specialty"`
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
	Time       string `json:"time" binding:"required,datetime=15:04"`
	Notes      string `json:"notes"`
	Status     string `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
}

// GetAppointments handles fetching all appointments for the logged-in user.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Where("user_id = ?", userID).
		Order("date asc, time asc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// CreateAppointment handles booking a new consultation.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	status := models.StatusScheduled
	if req.Status != "" {
		status = models.AppointmentStatus(req.Status)
	}

	appointment := models.Appointment{
		UserID:     userID,
		DoctorName: req.DoctorName,
		Specialty:  req.Specialty,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
		Status:     status,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// UpdateAppointment handles editing or rescheduling an appointment.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	appointment, ok := h.findOwned(c)
	if !ok {
		return
	}

	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment.DoctorName = req.DoctorName
	appointment.Specialty = req.Specialty
	appointment.Date = req.Date
	appointment.Time = req.Time
	appointment.Notes = req.Notes
	if req.Status != "" {
		appointment.Status = models.AppointmentStatus(req.Status)
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment updated successfully", appointment)
}

// DeleteAppointment handles removing an appointment.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	appointment, ok := h.findOwned(c)
	if !ok {
		return
	}

	if err := h.DB.Delete(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	utils.NoContent(c)
}

// findOwned loads the appointment from the :id param, scoped to the
// authenticated user.
func (h *AppointmentHandler) findOwned(c *gin.Context) (models.Appointment, bool) {
	var appointment models.Appointment

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return appointment, false
	}

	if err := h.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&appointment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return appointment, false
	}
	return appointment, true
}
