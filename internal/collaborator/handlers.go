package collaborator

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/bookings"
	"storefront/internal/promo"
)

// InvalidPromoMessage is returned for an unknown promo code
const InvalidPromoMessage = "Invalid promo code"

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// NewRouter builds the collaborator API on a fresh gin engine
func NewRouter(store *Store) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	SetupRoutes(router, NewHandler(store))
	return router
}

func SetupRoutes(router gin.IRouter, h *Handler) {
	router.GET("/experiences", h.ListExperiences)                  // GET /experiences
	router.GET("/experiences/:id", h.GetExperience)                // GET /experiences/:id
	router.GET("/experiences/:id/availability", h.GetAvailability) // GET /experiences/:id/availability
	router.POST("/promo/validate", h.ValidatePromo)                // POST /promo/validate
	router.POST("/bookings", h.CreateBooking)                      // POST /bookings
}

func (h *Handler) ListExperiences(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListExperiences())
}

func (h *Handler) GetExperience(c *gin.Context) {
	experience, err := h.store.GetExperience(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Experience not found"})
		return
	}
	c.JSON(http.StatusOK, experience)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Availability(c.Param("id")))
}

func (h *Handler) ValidatePromo(c *gin.Context) {
	var req promo.ValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "message": "Invalid request body"})
		return
	}

	code, ok := h.store.LookupPromo(req.PromoCode, req.ExperienceID.String())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "message": InvalidPromoMessage})
		return
	}

	value := code.Value
	c.JSON(http.StatusOK, promo.ValidationResponse{
		Valid:         true,
		Message:       code.Message,
		DiscountValue: &value,
		Type:          code.Kind.String(),
		ExperienceID:  req.ExperienceID,
	})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req bookings.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking request"})
		return
	}

	if req.Experience.ID == "" || req.Experience.Date == "" || req.Experience.Time == "" || req.Experience.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Experience, date, time and quantity are required"})
		return
	}
	if req.Customer.FullName == "" || req.Customer.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Customer name and email are required"})
		return
	}

	bookingID, err := h.store.CreateBooking(req)
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": SlotTakenMessage})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create booking"})
		return
	}

	c.JSON(http.StatusCreated, bookings.BookingResponse{
		BookingID: bookingID,
		Message:   "Booking confirmed",
	})
}
