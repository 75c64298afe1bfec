package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medisphere-server/internal/middleware"
	"medisphere-server/internal/models"
	"medisphere-server/internal/utils"
)

// CartHandler handles pharmacy cart requests.
type CartHandler struct {
	DB *gorm.DB
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{DB: db}
}

// GetCart handles fetching the logged-in user's cart, creating an empty one
// on first access.
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, ok := h.loadCart(c)
	if !ok {
		return
	}
	utils.Success(c, "Cart fetched successfully", cart)
}

// AddItemRequest represents the request body for adding a medication to the cart.
type AddItemRequest struct {
	MedicationID string `json:"medicationId" binding:"required,uuid"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
}

// AddItem handles adding a medication to the cart. Adding an item already in
// the cart bumps its quantity. The cart total is recomputed from its items
// on every mutation.
func (h *CartHandler) AddItem(c *gin.Context) {
	cart, ok := h.loadCart(c)
	if !ok {
		return
	}

	var req AddItemRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	var medication models.Medication
	if err := h.DB.Where("id = ? AND user_id = ?", req.MedicationID, userID).
		First(&medication).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medication not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if i := cart.FindItem(req.MedicationID); i >= 0 {
		cart.Items[i].Quantity += req.Quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			CartID:       cart.ID,
			MedicationID: medication.ID,
			Name:         medication.Name,
			Price:        medication.Price,
			Quantity:     req.Quantity,
		})
	}
	cart.Recalculate()

	if err := h.saveCart(&cart); err != nil {
		utils.InternalServerError(c, "Failed to update cart: "+err.Error())
		return
	}

	utils.Success(c, "Item added to cart", cart)
}

// RemoveItem handles removing a medication line from the cart.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, ok := h.loadCart(c)
	if !ok {
		return
	}

	medicationID := c.Param("medicationId")
	i := cart.FindItem(medicationID)
	if i < 0 {
		utils.NotFound(c, "Item not found in cart")
		return
	}

	removed := cart.Items[i]
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	cart.Recalculate()

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&removed).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&cart).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to update cart: "+err.Error())
		return
	}

	utils.Success(c, "Item removed from cart", cart)
}

// ClearCart handles emptying the cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	cart, ok := h.loadCart(c)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		cart.Items = nil
		cart.Recalculate()
		return tx.Model(&cart).Update("total", cart.Total).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to clear cart: "+err.Error())
		return
	}

	utils.Success(c, "Cart cleared", cart)
}

// loadCart fetches the user's cart with items, creating it if absent.
func (h *CartHandler) loadCart(c *gin.Context) (models.Cart, bool) {
	var cart models.Cart

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return cart, false
	}

	err := h.DB.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		cart = models.Cart{UserID: userID}
		if err := h.DB.Create(&cart).Error; err != nil {
			utils.InternalServerError(c, "Failed to create cart: "+err.Error())
			return cart, false
		}
		return cart, true
	}
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return cart, false
	}
	return cart, true
}

// saveCart persists the cart together with its items.
func (h *CartHandler) saveCart(cart *models.Cart) error {
	return h.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error
}
