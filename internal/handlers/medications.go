package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medisphere-server/internal/middleware"
	"medisphere-server/internal/models"
	"medisphere-server/internal/schedule"
	"medisphere-server/internal/utils"
)

// MedicationHandler handles medication related requests.
type MedicationHandler struct {
	DB *gorm.DB
}

// NewMedicationHandler creates a new MedicationHandler.
func NewMedicationHandler(db *gorm.DB) *MedicationHandler {
	return &MedicationHandler{DB: db}
}

// MedicationRequest represents the request body for creating or updating a medication.
type MedicationRequest struct {
	Name         string   `json:"name" binding:"required"`
	Dosage       string   `json:"dosage"`
	Instructions string   `json:"instructions"`
	ScheduleDays []string `json:"scheduleDays"`
	Times        []string `json:"scheduleTimes" binding:"dive,datetime=15:04"`
	PillsLeft    int      `json:"pillsLeft" binding:"min=0"`
	TotalPills   int      `json:"totalPills" binding:"min=0"`
	RefillAt     int      `json:"refillAt" binding:"min=0"`
	Price        float64  `json:"price" binding:"min=0"`
	PrescribedBy string   `json:"prescribedBy"`
}

// GetMedications handles fetching all medications for the logged-in user.
func (h *MedicationHandler) GetMedications(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var medications []models.Medication
	if err := h.DB.Preload("History").Where("user_id = ?", userID).
		Order("created_at asc").Find(&medications).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medications: "+err.Error())
		return
	}

	utils.Success(c, "Medications fetched successfully", medications)
}

// CreateMedication handles adding a new medication with an empty dose history.
func (h *MedicationHandler) CreateMedication(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req MedicationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	medication := models.Medication{
		UserID:       userID,
		Name:         req.Name,
		Dosage:       req.Dosage,
		Instructions: req.Instructions,
		ScheduleDays: models.StringList(req.ScheduleDays),
		Times:        models.StringList(req.Times),
		PillsLeft:    req.PillsLeft,
		TotalPills:   req.TotalPills,
		RefillAt:     req.RefillAt,
		Price:        req.Price,
		PrescribedBy: req.PrescribedBy,
	}

	if err := h.DB.Create(&medication).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medication: "+err.Error())
		return
	}

	utils.Created(c, "Medication created successfully", medication)
}

// UpdateMedication handles editing a medication's details or schedule.
func (h *MedicationHandler) UpdateMedication(c *gin.Context) {
	medication, ok := h.findOwned(c)
	if !ok {
		return
	}

	var req MedicationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	medication.Name = req.Name
	medication.Dosage = req.Dosage
	medication.Instructions = req.Instructions
	medication.ScheduleDays = models.StringList(req.ScheduleDays)
	medication.Times = models.StringList(req.Times)
	medication.PillsLeft = req.PillsLeft
	medication.TotalPills = req.TotalPills
	medication.RefillAt = req.RefillAt
	medication.Price = req.Price
	medication.PrescribedBy = req.PrescribedBy

	if err := h.DB.Save(&medication).Error; err != nil {
		utils.InternalServerError(c, "Failed to update medication: "+err.Error())
		return
	}

	utils.Success(c, "Medication updated successfully", medication)
}

// DeleteMedication handles removing a medication and its dose history.
func (h *MedicationHandler) DeleteMedication(c *gin.Context) {
	medication, ok := h.findOwned(c)
	if !ok {
		return
	}

	// History rows go with the medication.
	if err := h.DB.Select("History").Delete(&medication).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete medication: "+err.Error())
		return
	}

	utils.NoContent(c)
}

// TakeDoseRequest represents the request body for logging a taken dose.
// ScheduledTime identifies the dose slot; it defaults to the current moment
// when omitted (ad-hoc dose outside the schedule).
type TakeDoseRequest struct {
	ScheduledTime *time.Time `json:"scheduledTime"`
}

// TakeDose handles marking a dose as taken. The matching history entry is
// updated if one exists for the slot; otherwise a taken event is appended.
// The pill count drops by one, never below zero.
func (h *MedicationHandler) TakeDose(c *gin.Context) {
	medication, ok := h.findOwned(c)
	if !ok {
		return
	}

	// Body is optional: an empty POST logs an ad-hoc dose at the current time.
	var req TakeDoseRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	now := time.Now()
	scheduled := now
	if req.ScheduledTime != nil {
		scheduled = *req.ScheduledTime
	}

	var logged models.DoseEvent
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		// Update the existing event for this slot if one was already recorded.
		var existing models.DoseEvent
		slot := scheduled.Format("2006-01-02 15:04")
		findErr := tx.Where("medication_id = ? AND DATE_FORMAT(scheduled_time, '%Y-%m-%d %H:%i') = ?",
			medication.ID, slot).First(&existing).Error
		switch findErr {
		case nil:
			existing.MarkTaken(now)
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			logged = existing
		case gorm.ErrRecordNotFound:
			event := models.DoseEvent{
				MedicationID:  medication.ID,
				ScheduledTime: scheduled,
			}
			event.MarkTaken(now)
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
			logged = event
		default:
			return findErr
		}

		if medication.PillsLeft > 0 {
			medication.PillsLeft--
		}
		return tx.Model(&medication).Update("pills_left", medication.PillsLeft).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to log dose: "+err.Error())
		return
	}

	utils.Success(c, "Dose marked as taken", logged)
}

// Refill handles restocking a medication to its full pill count.
func (h *MedicationHandler) Refill(c *gin.Context) {
	medication, ok := h.findOwned(c)
	if !ok {
		return
	}

	now := time.Now()
	medication.PillsLeft = medication.TotalPills
	medication.LastRefill = &now

	if err := h.DB.Save(&medication).Error; err != nil {
		utils.InternalServerError(c, "Failed to refill medication: "+err.Error())
		return
	}

	utils.Success(c, "Medication refilled", medication)
}

// GetUpcomingDoses handles fetching the doses still due today for the
// logged-in user, soonest first.
func (h *MedicationHandler) GetUpcomingDoses(c *gin.Context) {
	medications, ok := h.loadAll(c)
	if !ok {
		return
	}

	doses := schedule.UpcomingDoses(time.Now(), medications)
	utils.Success(c, "Upcoming doses fetched successfully", doses)
}

// AdherenceResponse carries today's adherence score.
type AdherenceResponse struct {
	Score int `json:"score"`
}

// GetAdherence handles computing today's adherence score for the logged-in user.
func (h *MedicationHandler) GetAdherence(c *gin.Context) {
	medications, ok := h.loadAll(c)
	if !ok {
		return
	}

	score := schedule.Adherence(time.Now(), medications)
	utils.Success(c, "Adherence computed successfully", AdherenceResponse{Score: score})
}

// findOwned loads the medication from the :id param, scoped to the
// authenticated user. A foreign or missing id reports 404 either way.
func (h *MedicationHandler) findOwned(c *gin.Context) (models.Medication, bool) {
	var medication models.Medication

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return medication, false
	}

	if err := h.DB.Preload("History").Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&medication).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medication not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return medication, false
	}
	return medication, true
}

// loadAll fetches the user's full medication list with history preloaded.
func (h *MedicationHandler) loadAll(c *gin.Context) ([]models.Medication, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var medications []models.Medication
	if err := h.DB.Preload("History").Where("user_id = ?", userID).
		Order("created_at asc").Find(&medications).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medications: "+err.Error())
		return nil, false
	}
	return medications, true
}
