package checkout

import "github.com/gin-gonic/gin"

// SetupCheckoutRoutes configures the details, checkout and confirmation views
func SetupCheckoutRoutes(router *gin.RouterGroup, controller Controller) {
	router.POST("/experiences/:id/sessions", controller.OpenDetails) // POST /api/v1/experiences/:id/sessions - Open details view

	sessions := router.Group("/sessions")
	{
		sessions.GET("/:sessionId", controller.GetDetails)              // GET /api/v1/sessions/:sessionId
		sessions.PUT("/:sessionId/date", controller.SelectDate)         // PUT /api/v1/sessions/:sessionId/date
		sessions.PUT("/:sessionId/time", controller.SelectTime)         // PUT /api/v1/sessions/:sessionId/time
		sessions.PUT("/:sessionId/quantity", controller.UpdateQuantity) // PUT /api/v1/sessions/:sessionId/quantity
		sessions.POST("/:sessionId/confirm", controller.Confirm)        // POST /api/v1/sessions/:sessionId/confirm - Hand over to checkout
		sessions.DELETE("/:sessionId", controller.CloseDetails)         // DELETE /api/v1/sessions/:sessionId - Navigate away
	}

	checkout := router.Group("/checkout")
	{
		checkout.POST("", controller.OpenCheckout)                // POST /api/v1/checkout - Open checkout from a nav token
		checkout.GET("/:sessionId", controller.GetCheckout)       // GET /api/v1/checkout/:sessionId
		checkout.POST("/:sessionId/promo", controller.ApplyPromo) // POST /api/v1/checkout/:sessionId/promo
		checkout.POST("/:sessionId/submit", controller.Submit)    // POST /api/v1/checkout/:sessionId/submit
		checkout.DELETE("/:sessionId", controller.CloseCheckout)  // DELETE /api/v1/checkout/:sessionId - Navigate away
	}

	router.GET("/confirmation/:token", controller.GetConfirmation) // GET /api/v1/confirmation/:token - One-shot result view
}

// Flow:
// 1. POST /experiences/:id/sessions loads the experience and its booked slots
// 2. PUT date, time and quantity on the session; every answer carries the recomputed view
// 3. POST /sessions/:sessionId/confirm returns a nav token for checkout
// 4. POST /checkout {navToken} opens checkout; without a valid token it redirects to the catalog
// 5. POST promo and submit on the checkout session; submit returns a nav token for confirmation
// 6. GET /confirmation/:token shows the booking reference once
