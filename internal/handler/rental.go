package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filmreel/video-rental/internal/model"
	"github.com/filmreel/video-rental/internal/queue"
	"github.com/filmreel/video-rental/internal/repository"
	queue_publisher "github.com/filmreel/video-rental/internal/service"
)

// RentalStore is the persistence surface of the rental workflow.
// *repository.RentalRepo implements it; Open and Close run their
// cross-entity updates in a single transaction.
type RentalStore interface {
	List(ctx context.Context) ([]model.Rental, error)
	GetByID(ctx context.Context, id uint64) (model.Rental, error)
	Open(ctx context.Context, customer model.Customer, movieID uint64) (model.Rental, error)
	Close(ctx context.Context, customerID, movieID uint64) (model.Rental, error)
}

// customerResolver is the slice of CustomerStore the rental workflow
// needs to snapshot the customer at checkout.
type customerResolver interface {
	GetByID(ctx context.Context, id uint64) (model.Customer, error)
}

// RentalHandler serves the rental list/detail endpoints plus the
// checkout and return workflows. Publish is the event hook; it defaults
// to the RabbitMQ publisher and tests swap in a no-op.
type RentalHandler struct {
	Rentals   RentalStore
	Customers customerResolver
	Publish   func(ctx context.Context, ev queue.RentalEvent) error
}

func NewRentalHandler(r RentalStore, c customerResolver) *RentalHandler {
	return &RentalHandler{Rentals: r, Customers: c, Publish: queue_publisher.PublishRentalEvent}
}

type rentalReq struct {
	CustomerID uint64 `json:"customerId" validate:"required"`
	MovieID    uint64 `json:"movieId" validate:"required"`
}

func (h *RentalHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	rentals, err := h.Rentals.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rentals)
}

func (h *RentalHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "rental not found"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	rental, err := h.Rentals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rental not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rental)
}

// Create checks a movie out to a customer. The customer must exist and
// the movie must have stock; a missing movie and an exhausted one are
// the same 400 to the caller.
func (h *RentalHandler) Create(c echo.Context) error {
	var req rentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	customer, err := h.Customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rental, err := h.Rentals.Open(ctx, customer, req.MovieID)
	if err != nil {
		if errors.Is(err, repository.ErrOutOfStock) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie not in stock or invalid movie"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create rental failed"})
	}

	h.publishAsync(queue.RentalEvent{
		Kind:         queue.EventRentalOpened,
		RentalID:     rental.ID,
		CustomerID:   rental.Customer.ID,
		CustomerName: rental.Customer.Name,
		MovieID:      rental.Movie.ID,
		MovieTitle:   rental.Movie.Title,
		DateOut:      rental.DateOut.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, rental)
}

// Return closes the open rental for a (customer, movie) pair, setting
// the return date and fee and restoring stock.
func (h *RentalHandler) Return(c echo.Context) error {
	var req rentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	rental, err := h.Rentals.Close(ctx, req.CustomerID, req.MovieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rental not found"})
		}
		if errors.Is(err, repository.ErrAlreadyReturned) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "rental already processed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "return rental failed"})
	}

	ev := queue.RentalEvent{
		Kind:         queue.EventRentalClosed,
		RentalID:     rental.ID,
		CustomerID:   rental.Customer.ID,
		CustomerName: rental.Customer.Name,
		MovieID:      rental.Movie.ID,
		MovieTitle:   rental.Movie.Title,
		DateOut:      rental.DateOut.Format(time.RFC3339),
		RentalFee:    rental.RentalFee,
	}
	if rental.DateReturned != nil {
		ev.DateReturned = rental.DateReturned.Format(time.RFC3339)
	}
	h.publishAsync(ev)

	return c.JSON(http.StatusOK, rental)
}

// publishAsync fires the event hook without blocking the response.
// Publish failures are logged inside the publisher and otherwise
// ignored; events are advisory, not part of the workflow's guarantees.
func (h *RentalHandler) publishAsync(ev queue.RentalEvent) {
	if h.Publish == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}
