package checkout

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/bookings"
	"storefront/internal/experiences"
	"storefront/internal/selection"
	"storefront/internal/shared/utils/response"
	"storefront/internal/upstream"
	"storefront/pkg/logger"
)

type Controller interface {
	OpenDetails(c *gin.Context)
	GetDetails(c *gin.Context)
	SelectDate(c *gin.Context)
	SelectTime(c *gin.Context)
	UpdateQuantity(c *gin.Context)
	Confirm(c *gin.Context)
	CloseDetails(c *gin.Context)

	OpenCheckout(c *gin.Context)
	GetCheckout(c *gin.Context)
	ApplyPromo(c *gin.Context)
	Submit(c *gin.Context)
	CloseCheckout(c *gin.Context)

	GetConfirmation(c *gin.Context)
}

type controller struct {
	service     Service
	catalogPath string
	logger      *logger.Logger
}

// NewController creates the storefront controller. Requests that arrive
// without the context a view needs are redirected to catalogPath.
func NewController(service Service, catalogPath string) Controller {
	return &controller{
		service:     service,
		catalogPath: catalogPath,
		logger:      logger.GetDefault(),
	}
}

func (ctrl *controller) OpenDetails(c *gin.Context) {
	view, err := ctrl.service.OpenDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctrl.respondDetailsError(c, nil, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Details session opened", view, nil)
}

func (ctrl *controller) GetDetails(c *gin.Context) {
	view, err := ctrl.service.GetDetails(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		ctrl.respondDetailsError(c, nil, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Details retrieved successfully", view, nil)
}

func (ctrl *controller) SelectDate(c *gin.Context) {
	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	view, err := ctrl.service.SelectDate(c.Request.Context(), c.Param("sessionId"), req.Date)
	if err != nil {
		ctrl.respondDetailsError(c, view, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Date selected", view, nil)
}

func (ctrl *controller) SelectTime(c *gin.Context) {
	var req SelectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	view, err := ctrl.service.SelectTime(c.Request.Context(), c.Param("sessionId"), req.Time)
	if err != nil {
		ctrl.respondDetailsError(c, view, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Time selected", view, nil)
}

func (ctrl *controller) UpdateQuantity(c *gin.Context) {
	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	view, err := ctrl.service.UpdateQuantity(c.Request.Context(), c.Param("sessionId"), req)
	if err != nil {
		ctrl.respondDetailsError(c, view, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Quantity updated", view, nil)
}

func (ctrl *controller) Confirm(c *gin.Context) {
	confirmed, err := ctrl.service.Confirm(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		ctrl.respondDetailsError(c, nil, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Proceed to checkout", confirmed, nil)
}

func (ctrl *controller) CloseDetails(c *gin.Context) {
	if err := ctrl.service.CloseDetails(c.Request.Context(), c.Param("sessionId")); err != nil {
		ctrl.respondDetailsError(c, nil, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Details session closed", nil, nil)
}

func (ctrl *controller) OpenCheckout(c *gin.Context) {
	var req OpenCheckoutRequest
	// A missing or malformed body is the same as a missing context
	_ = c.ShouldBindJSON(&req)

	view, err := ctrl.service.OpenCheckout(c.Request.Context(), req.NavToken)
	if err != nil {
		ctrl.respondCheckoutError(c, nil, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Checkout session opened", view, nil)
}

func (ctrl *controller) GetCheckout(c *gin.Context) {
	view, err := ctrl.service.GetCheckout(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		ctrl.respondCheckoutError(c, nil, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Checkout retrieved successfully", view, nil)
}

func (ctrl *controller) ApplyPromo(c *gin.Context) {
	var req ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	view, err := ctrl.service.ApplyPromo(c.Request.Context(), c.Param("sessionId"), req.PromoCode)
	if err != nil {
		ctrl.respondCheckoutError(c, view, err)
		return
	}

	message := "Promo code processed"
	if view.PromoMessage != nil {
		message = view.PromoMessage.Text
	}
	response.RespondJSON(c, "success", http.StatusOK, message, view, nil)
}

func (ctrl *controller) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	submitted, view, err := ctrl.service.Submit(c.Request.Context(), c.Param("sessionId"), req.Form())
	if err != nil {
		ctrl.respondCheckoutError(c, view, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Booking confirmed", submitted, nil)
}

func (ctrl *controller) CloseCheckout(c *gin.Context) {
	if err := ctrl.service.CloseCheckout(c.Request.Context(), c.Param("sessionId")); err != nil {
		ctrl.respondCheckoutError(c, nil, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Checkout session closed", nil, nil)
}

func (ctrl *controller) GetConfirmation(c *gin.Context) {
	view, err := ctrl.service.Confirmation(c.Request.Context(), c.Param("token"))
	if err != nil {
		ctrl.respondCheckoutError(c, nil, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Booking confirmed", view, nil)
}

func (ctrl *controller) respondDetailsError(c *gin.Context, view *DetailsView, err error) {
	var data interface{}
	if view != nil && view.SessionID != "" {
		data = view
	}

	switch {
	case errors.Is(err, experiences.ErrExperienceNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Experience not found", nil, nil)
	case errors.Is(err, experiences.ErrFetchFailed):
		response.RespondJSON(c, "error", http.StatusBadGateway, experiences.FetchFailedMessage, nil, nil)
	case errors.Is(err, selection.ErrUnknownDate), errors.Is(err, selection.ErrUnknownTime):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), data, nil)
	case errors.Is(err, selection.ErrNoDateSelected):
		response.RespondJSON(c, "error", http.StatusConflict, selection.SelectDateFirstHint, data, nil)
	case errors.Is(err, selection.ErrSlotUnavailable):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), data, nil)
	case errors.Is(err, ErrSelectionIncomplete):
		response.RespondJSON(c, "error", http.StatusConflict, selection.IncompleteLabel, data, nil)
	default:
		ctrl.respondCommonError(c, data, err)
	}
}

func (ctrl *controller) respondCheckoutError(c *gin.Context, view *CheckoutView, err error) {
	var data interface{}
	if view != nil && view.SessionID != "" {
		data = view
	}

	var verr *bookings.ValidationError
	var serr *bookings.SubmitError
	switch {
	case errors.Is(err, ErrMissingContext):
		c.Redirect(http.StatusSeeOther, ctrl.catalogPath)
	case errors.As(err, &verr):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Please fix the highlighted fields", data, verr.Fields)
	case errors.As(err, &serr):
		status := http.StatusBadGateway
		if upstream.IsConflict(err) {
			status = http.StatusConflict
		}
		response.RespondJSON(c, "error", status, serr.Message, data, bookings.FieldErrors{Terms: serr.Message})
	case errors.Is(err, ErrPromoInProgress), errors.Is(err, bookings.ErrSubmitInProgress):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), data, nil)
	case errors.Is(err, bookings.ErrAlreadyConfirmed):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), data, nil)
	default:
		ctrl.respondCommonError(c, data, err)
	}
}

func (ctrl *controller) respondCommonError(c *gin.Context, data interface{}, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Session not found or expired", nil, nil)
	case errors.Is(err, ErrSessionClosed), errors.Is(err, ErrStaleResponse):
		response.RespondJSON(c, "error", http.StatusGone, "This view has been closed", nil, nil)
	default:
		ctrl.logger.WithRequestID(c.GetString("request_id")).LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Something went wrong. Please try again.", data, nil)
	}
}
