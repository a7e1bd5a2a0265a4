package checkout

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/availability"
	"storefront/internal/bookings"
	"storefront/internal/collaborator"
	"storefront/internal/experiences"
	"storefront/internal/navigation"
	"storefront/internal/pricing"
	"storefront/internal/promo"
	"storefront/internal/upstream"
	"storefront/pkg/logger"
)

const catalogPath = "/experiences"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.SetDefault(logger.Discard())
	os.Exit(m.Run())
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     json.RawMessage `json:"errors"`
}

type storefront struct {
	t      *testing.T
	store  *collaborator.Store
	router *gin.Engine
}

// newStorefront wires the full flow against an in-process collaborator
func newStorefront(t *testing.T) *storefront {
	t.Helper()

	store := collaborator.NewStore()
	upstreamServer := httptest.NewServer(collaborator.NewRouter(store))
	t.Cleanup(upstreamServer.Close)

	client := upstream.NewClient(upstreamServer.URL, 5*time.Second)
	registry := NewRegistry(time.Minute)
	t.Cleanup(registry.CloseAll)

	service := NewService(Deps{
		Experiences: experiences.NewService(experiences.NewRepository(client), nil, 0),
		Promos:      promo.NewRepository(client),
		Bookings:    bookings.NewRepository(client),
		Navigation:  navigation.NewMemoryStore(time.Minute),
		Registry:    registry,
		Catalog:     availability.DefaultCatalog(),
		Taxes:       pricing.DefaultTaxes,
	})

	router := gin.New()
	SetupCheckoutRoutes(router.Group("/api/v1"), NewController(service, catalogPath))

	return &storefront{t: t, store: store, router: router}
}

func (s *storefront) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Code != http.StatusSeeOther {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

// reachCheckout walks the details view and opens checkout
func (s *storefront) reachCheckout(experienceID, date, slotTime string, quantity int) CheckoutView {
	s.t.Helper()

	w, env := s.do(http.MethodPost, "/api/v1/experiences/"+experienceID+"/sessions", nil)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	details := decode[DetailsView](s.t, env.Data)

	base := "/api/v1/sessions/" + details.SessionID
	w, _ = s.do(http.MethodPut, base+"/date", SelectDateRequest{Date: date})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	w, _ = s.do(http.MethodPut, base+"/time", SelectTimeRequest{Time: slotTime})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	w, _ = s.do(http.MethodPut, base+"/quantity", QuantityRequest{Quantity: &quantity})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	w, env = s.do(http.MethodPost, base+"/confirm", nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	confirmed := decode[ConfirmResponse](s.t, env.Data)

	// the details view is gone once checkout is entered
	w, _ = s.do(http.MethodGet, base, nil)
	assert.Equal(s.t, http.StatusNotFound, w.Code)

	w, env = s.do(http.MethodPost, "/api/v1/checkout", OpenCheckoutRequest{NavToken: confirmed.NavToken})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[CheckoutView](s.t, env.Data)
}

func validForm() SubmitRequest {
	return SubmitRequest{FullName: "Asha Rao", Email: "asha@example.com", AgreedToTerms: true}
}

func TestFlow_FlatDiscountBooking(t *testing.T) {
	s := newStorefront(t)

	view := s.reachCheckout("1", "Oct 22", "07:00 am", 2)
	assert.Equal(t, 1998.0, view.Summary.Subtotal)
	assert.Equal(t, 2057.0, view.Summary.Total)

	base := "/api/v1/checkout/" + view.SessionID
	w, env := s.do(http.MethodPost, base+"/promo", ApplyPromoRequest{PromoCode: "flat100"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view = decode[CheckoutView](t, env.Data)
	assert.Equal(t, 100.0, view.Summary.Discount)
	assert.Equal(t, 1957.0, view.Summary.Total)
	assert.Equal(t, "flat100", view.AppliedPromoCode)

	w, env = s.do(http.MethodPost, base+"/submit", validForm())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	submitted := decode[SubmitResponse](t, env.Data)
	assert.Regexp(t, `^HD-\d{8}-[A-Z0-9]{6}$`, submitted.ReferenceID)

	booking, ok := s.store.Booking(submitted.ReferenceID)
	require.True(t, ok)
	assert.Equal(t, 1957.0, booking.Price.Total)
	assert.Equal(t, 100.0, booking.Price.Discount)
	assert.Equal(t, 2, booking.Experience.Quantity)
	require.NotNil(t, booking.PromoCodeApplied)
	assert.Equal(t, "flat100", *booking.PromoCodeApplied)

	// checkout is left after a confirmed booking
	w, _ = s.do(http.MethodPost, base+"/submit", validForm())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, s.store.BookingAttempts())

	w, env = s.do(http.MethodGet, "/api/v1/confirmation/"+submitted.NavToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, submitted.ReferenceID, decode[ConfirmationView](t, env.Data).ReferenceID)

	// a reload has no context left
	w, _ = s.do(http.MethodGet, "/api/v1/confirmation/"+submitted.NavToken, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, catalogPath, w.Header().Get("Location"))
}

func TestFlow_PercentageDiscountThenRejectedCode(t *testing.T) {
	s := newStorefront(t)

	view := s.reachCheckout("2", "Oct 23", "09:00 am", 1)
	base := "/api/v1/checkout/" + view.SessionID

	w, env := s.do(http.MethodPost, base+"/promo", ApplyPromoRequest{PromoCode: "GOOD10"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view = decode[CheckoutView](t, env.Data)
	assert.InDelta(t, 89.9, view.Summary.Discount, 1e-9)
	assert.InDelta(t, 868.1, view.Summary.Total, 1e-9)

	w, env = s.do(http.MethodPost, base+"/promo", ApplyPromoRequest{PromoCode: "BAD"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view = decode[CheckoutView](t, env.Data)
	assert.Equal(t, 958.0, view.Summary.Total)
	assert.Empty(t, view.AppliedPromoCode)
	require.NotNil(t, view.PromoMessage)
	assert.True(t, view.PromoMessage.IsError)
	assert.Equal(t, collaborator.InvalidPromoMessage, view.PromoMessage.Text)

	w, env = s.do(http.MethodPost, base+"/submit", validForm())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking, ok := s.store.Booking(decode[SubmitResponse](t, env.Data).ReferenceID)
	require.True(t, ok)
	assert.Nil(t, booking.PromoCodeApplied)
	assert.Equal(t, 958.0, booking.Price.Total)
}

func TestFlow_CheckoutWithoutContextRedirects(t *testing.T) {
	s := newStorefront(t)

	w, _ := s.do(http.MethodPost, "/api/v1/checkout", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, catalogPath, w.Header().Get("Location"))

	w, _ = s.do(http.MethodPost, "/api/v1/checkout", OpenCheckoutRequest{NavToken: "made-up"})
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestFlow_CheckoutTokenIsOneShot(t *testing.T) {
	s := newStorefront(t)

	w, env := s.do(http.MethodPost, "/api/v1/experiences/3/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[DetailsView](t, env.Data).SessionID

	s.do(http.MethodPut, "/api/v1/sessions/"+id+"/date", SelectDateRequest{Date: "Oct 25"})
	s.do(http.MethodPut, "/api/v1/sessions/"+id+"/time", SelectTimeRequest{Time: "11:00 am"})
	w, env = s.do(http.MethodPost, "/api/v1/sessions/"+id+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[ConfirmResponse](t, env.Data).NavToken

	w, _ = s.do(http.MethodPost, "/api/v1/checkout", OpenCheckoutRequest{NavToken: token})
	assert.Equal(t, http.StatusCreated, w.Code)
	w, _ = s.do(http.MethodPost, "/api/v1/checkout", OpenCheckoutRequest{NavToken: token})
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestFlow_SlotTakenBeforeSubmit(t *testing.T) {
	s := newStorefront(t)

	view := s.reachCheckout("4", "Oct 26", "07:00 am", 1)
	s.store.MarkBooked("4", availability.Slot{Date: "Oct 26", Time: "07:00 am"})

	w, env := s.do(http.MethodPost, "/api/v1/checkout/"+view.SessionID+"/submit", validForm())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, collaborator.SlotTakenMessage, env.Message)
	assert.Equal(t, collaborator.SlotTakenMessage, decode[bookings.FieldErrors](t, env.Errors).Terms)

	rejected := decode[CheckoutView](t, env.Data)
	assert.Equal(t, bookings.StatusRejected, rejected.SubmissionStatus)
	assert.False(t, rejected.Submitting)
	assert.Equal(t, 1, s.store.BookingAttempts())

	// a rejected booking can be retried
	w, _ = s.do(http.MethodPost, "/api/v1/checkout/"+view.SessionID+"/submit", validForm())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 2, s.store.BookingAttempts())
}

func TestFlow_InvalidFormIsNotSent(t *testing.T) {
	s := newStorefront(t)

	view := s.reachCheckout("1", "Oct 24", "09:00 am", 1)
	w, env := s.do(http.MethodPost, "/api/v1/checkout/"+view.SessionID+"/submit", SubmitRequest{FullName: "   ", Email: "asha"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	fields := decode[bookings.FieldErrors](t, env.Errors)
	assert.Equal(t, bookings.FullNameRequiredMessage, fields.FullName)
	assert.Equal(t, bookings.InvalidEmailMessage, fields.Email)
	assert.Equal(t, bookings.TermsRequiredMessage, fields.Terms)
	assert.Zero(t, s.store.BookingAttempts())
}

func TestFlow_DetailsErrors(t *testing.T) {
	s := newStorefront(t)

	w, env := s.do(http.MethodPost, "/api/v1/experiences/999/sessions", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, experiences.FetchFailedMessage, env.Message)

	s.store.MarkBooked("1", availability.Slot{Date: "Oct 22", Time: "11:00 am"})
	w, env = s.do(http.MethodPost, "/api/v1/experiences/1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[DetailsView](t, env.Data).SessionID
	base := "/api/v1/sessions/" + id

	w, _ = s.do(http.MethodPut, base+"/time", SelectTimeRequest{Time: "07:00 am"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(http.MethodPut, base+"/date", SelectDateRequest{Date: "Dec 25"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.do(http.MethodPut, base+"/date", SelectDateRequest{Date: "Oct 22"})
	w, env = s.do(http.MethodPut, base+"/time", SelectTimeRequest{Time: "11:00 am"})
	assert.Equal(t, http.StatusConflict, w.Code)
	details := decode[DetailsView](t, env.Data)
	assert.Nil(t, details.SelectedTime)
	for _, option := range details.Times {
		if option.Time == "11:00 am" {
			assert.True(t, option.Booked)
			assert.True(t, option.Disabled)
		}
	}

	w, _ = s.do(http.MethodPost, base+"/confirm", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(http.MethodPut, base+"/quantity", QuantityRequest{Action: "double"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodPut, base+"/quantity", QuantityRequest{Action: "increment"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[DetailsView](t, env.Data).Quantity)

	w, _ = s.do(http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
