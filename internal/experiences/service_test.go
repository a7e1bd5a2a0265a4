package experiences

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/availability"
	"storefront/internal/upstream"
	"storefront/pkg/logger"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]Experience, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Experience), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Experience, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Experience), args.Error(1)
}

func (m *MockRepository) GetAvailability(ctx context.Context, id string) ([]availability.BookedSlotRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.BookedSlotRecord), args.Error(1)
}

func init() {
	logger.SetDefault(logger.Discard())
}

func TestID_UnmarshalNumberOrString(t *testing.T) {
	var fromNumber, fromString struct {
		ID ID `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"id":3}`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`{"id":"3"}`), &fromString))

	assert.Equal(t, ID("3"), fromNumber.ID)
	assert.Equal(t, fromNumber.ID, fromString.ID)

	var invalid struct {
		ID ID `json:"id"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &invalid))
}

func TestID_MarshalKeepsRepresentation(t *testing.T) {
	numeric, err := json.Marshal(ID("42"))
	require.NoError(t, err)
	assert.Equal(t, `42`, string(numeric))

	opaque, err := json.Marshal(ID("653f1c2e9b"))
	require.NoError(t, err)
	assert.Equal(t, `"653f1c2e9b"`, string(opaque))
}

func TestService_LoadDetails(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "1").Return(&Experience{ID: "1", Title: "Kayaking", Price: 999}, nil)
	repo.On("GetAvailability", mock.Anything, "1").Return([]availability.BookedSlotRecord{
		{Experience: availability.BookedSlot{Date: "Oct 22", Time: "07:00 am"}},
	}, nil)

	loaded, err := NewService(repo, nil, time.Minute).LoadDetails(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, "Kayaking", loaded.Experience.Title)
	assert.True(t, loaded.Booked.Has(availability.Slot{Date: "Oct 22", Time: "07:00 am"}))
	assert.Equal(t, 1, loaded.Booked.Len())
	repo.AssertExpectations(t)
}

func TestService_LoadDetailsAvailabilityFailureIsAllOrNothing(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "1").Return(&Experience{ID: "1", Title: "Kayaking"}, nil)
	repo.On("GetAvailability", mock.Anything, "1").Return(nil, errors.New("connection refused"))

	loaded, err := NewService(repo, nil, time.Minute).LoadDetails(context.Background(), "1")

	assert.Nil(t, loaded)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestService_LoadDetailsExperienceFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "1").Return(nil, &upstream.APIError{StatusCode: http.StatusNotFound})
	repo.On("GetAvailability", mock.Anything, "1").Return([]availability.BookedSlotRecord{}, nil)

	loaded, err := NewService(repo, nil, time.Minute).LoadDetails(context.Background(), "1")

	assert.Nil(t, loaded)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestService_LoadDetailsEmptyBodyIsNotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "9").Return(nil, nil)
	repo.On("GetAvailability", mock.Anything, "9").Return([]availability.BookedSlotRecord{}, nil)

	_, err := NewService(repo, nil, time.Minute).LoadDetails(context.Background(), "9")

	assert.ErrorIs(t, err, ErrExperienceNotFound)
}

func TestService_ListWithoutCache(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return([]Experience{{ID: "1"}, {ID: "2"}}, nil).Once()

	list, err := NewService(repo, nil, 0).List(context.Background())

	require.NoError(t, err)
	assert.Len(t, list, 2)
	repo.AssertExpectations(t)
}

func TestRepository_AgainstCollaboratorShapes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/experiences":
			_, _ = w.Write([]byte(`[{"id":1,"title":"Kayaking","price":999}]`))
		case "/experiences/1":
			_, _ = w.Write([]byte(`{"id":1,"title":"Kayaking","price":999,"details":{"about":"Minimum age 10."}}`))
		case "/experiences/1/availability":
			_, _ = w.Write([]byte(`[{"experience":{"date":"Oct 23","time":"11:00 am"}}]`))
		case "/experiences/2":
			_, _ = w.Write([]byte(`null`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	repo := NewRepository(upstream.NewClient(srv.URL, time.Second).WithLogger(logger.Discard()))
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ID("1"), list[0].ID)

	experience, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Minimum age 10.", experience.Details.About)

	records, err := repo.GetAvailability(ctx, "1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, availability.Slot{Date: "Oct 23", Time: "11:00 am"}, records[0].Slot())

	missing, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
