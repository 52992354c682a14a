package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmreel/video-rental/internal/model"
	"github.com/filmreel/video-rental/internal/queue"
	"github.com/filmreel/video-rental/internal/repository"
)

type rentalStoreMock struct {
	listFn  func(ctx context.Context) ([]model.Rental, error)
	getFn   func(ctx context.Context, id uint64) (model.Rental, error)
	openFn  func(ctx context.Context, customer model.Customer, movieID uint64) (model.Rental, error)
	closeFn func(ctx context.Context, customerID, movieID uint64) (model.Rental, error)
}

func (m *rentalStoreMock) List(ctx context.Context) ([]model.Rental, error) { return m.listFn(ctx) }
func (m *rentalStoreMock) GetByID(ctx context.Context, id uint64) (model.Rental, error) {
	return m.getFn(ctx, id)
}
func (m *rentalStoreMock) Open(ctx context.Context, customer model.Customer, movieID uint64) (model.Rental, error) {
	return m.openFn(ctx, customer, movieID)
}
func (m *rentalStoreMock) Close(ctx context.Context, customerID, movieID uint64) (model.Rental, error) {
	return m.closeFn(ctx, customerID, movieID)
}

type customerResolverMock struct {
	getFn func(ctx context.Context, id uint64) (model.Customer, error)
}

func (m *customerResolverMock) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	return m.getFn(ctx, id)
}

func newRentalHandler(r RentalStore, c customerResolver) (*RentalHandler, chan queue.RentalEvent) {
	events := make(chan queue.RentalEvent, 1)
	h := &RentalHandler{
		Rentals:   r,
		Customers: c,
		Publish: func(ctx context.Context, ev queue.RentalEvent) error {
			events <- ev
			return nil
		},
	}
	return h, events
}

func waitEvent(t *testing.T, events chan queue.RentalEvent) queue.RentalEvent {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no rental event published")
		return queue.RentalEvent{}
	}
}

func TestRentalCreate_MissingFields(t *testing.T) {
	h, _ := newRentalHandler(&rentalStoreMock{}, &customerResolverMock{})

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/rentals", `{"customerId":1}`), rec)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRentalCreate_InvalidCustomer(t *testing.T) {
	h, _ := newRentalHandler(&rentalStoreMock{}, &customerResolverMock{
		getFn: func(ctx context.Context, id uint64) (model.Customer, error) {
			return model.Customer{}, sql.ErrNoRows
		},
	})

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/rentals", `{"customerId":1,"movieId":2}`), rec)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid customer")
}

func TestRentalCreate_OutOfStock(t *testing.T) {
	h, _ := newRentalHandler(&rentalStoreMock{
		openFn: func(ctx context.Context, customer model.Customer, movieID uint64) (model.Rental, error) {
			return model.Rental{}, repository.ErrOutOfStock
		},
	}, &customerResolverMock{
		getFn: func(ctx context.Context, id uint64) (model.Customer, error) {
			return model.Customer{ID: id, Name: "marcus aurelius", Phone: "555-0100"}, nil
		},
	})

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/rentals", `{"customerId":1,"movieId":2}`), rec)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not in stock")
}

func TestRentalCreate_OK(t *testing.T) {
	dateOut := time.Now().UTC().Truncate(time.Second)
	h, events := newRentalHandler(&rentalStoreMock{
		openFn: func(ctx context.Context, customer model.Customer, movieID uint64) (model.Rental, error) {
			return model.Rental{
				ID:       10,
				Customer: model.CustomerSnapshot{ID: customer.ID, Name: customer.Name, Phone: customer.Phone},
				Movie:    model.MovieSnapshot{ID: movieID, Title: "the big sleep", DailyRentalRate: 2},
				DateOut:  dateOut,
			}, nil
		},
	}, &customerResolverMock{
		getFn: func(ctx context.Context, id uint64) (model.Customer, error) {
			return model.Customer{ID: id, Name: "marcus aurelius", Phone: "555-0100"}, nil
		},
	})

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/rentals", `{"customerId":1,"movieId":2}`), rec)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.Rental
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(10), got.ID)
	assert.Equal(t, "marcus aurelius", got.Customer.Name)
	assert.Equal(t, "the big sleep", got.Movie.Title)
	assert.Nil(t, got.DateReturned)
	assert.Nil(t, got.RentalFee)

	ev := waitEvent(t, events)
	assert.Equal(t, queue.EventRentalOpened, ev.Kind)
	assert.Equal(t, uint64(10), ev.RentalID)
}

func TestRentalReturn_NotFound(t *testing.T) {
	h, _ := newRentalHandler(&rentalStoreMock{
		closeFn: func(ctx context.Context, customerID, movieID uint64) (model.Rental, error) {
			return model.Rental{}, sql.ErrNoRows
		},
	}, &customerResolverMock{})

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/returns", `{"customerId":1,"movieId":2}`), rec)

	require.NoError(t, h.Return(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRentalReturn_AlreadyProcessed(t *testing.T) {
	h, _ := newRentalHandler(&rentalStoreMock{
		closeFn: func(ctx context.Context, customerID, movieID uint64) (model.Rental, error) {
			return model.Rental{}, repository.ErrAlreadyReturned
		},
	}, &customerResolverMock{})

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/returns", `{"customerId":1,"movieId":2}`), rec)

	require.NoError(t, h.Return(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already processed")
}

func TestRentalReturn_MalformedBody(t *testing.T) {
	h, _ := newRentalHandler(&rentalStoreMock{}, &customerResolverMock{})

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/returns", `{"customerId":0,"movieId":2}`), rec)

	require.NoError(t, h.Return(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRentalReturn_OK(t *testing.T) {
	returned := time.Now().UTC().Truncate(time.Second)
	dateOut := returned.Add(-7 * 24 * time.Hour)
	fee := 14.0

	h, events := newRentalHandler(&rentalStoreMock{
		closeFn: func(ctx context.Context, customerID, movieID uint64) (model.Rental, error) {
			return model.Rental{
				ID:           10,
				Customer:     model.CustomerSnapshot{ID: customerID, Name: "marcus aurelius", Phone: "555-0100"},
				Movie:        model.MovieSnapshot{ID: movieID, Title: "the big sleep", DailyRentalRate: 2},
				DateOut:      dateOut,
				DateReturned: &returned,
				RentalFee:    &fee,
			}, nil
		},
	}, &customerResolverMock{})

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/returns", `{"customerId":1,"movieId":2}`), rec)

	require.NoError(t, h.Return(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Rental
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.RentalFee)
	assert.Equal(t, 14.0, *got.RentalFee)
	require.NotNil(t, got.DateReturned)

	ev := waitEvent(t, events)
	assert.Equal(t, queue.EventRentalClosed, ev.Kind)
	require.NotNil(t, ev.RentalFee)
	assert.Equal(t, 14.0, *ev.RentalFee)
}
