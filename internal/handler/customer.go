package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmreel/video-rental/internal/model"
)

// CustomerStore is the persistence surface the customer endpoints need.
// *repository.CustomerRepo implements it.
type CustomerStore interface {
	List(ctx context.Context) ([]model.Customer, error)
	GetByID(ctx context.Context, id uint64) (model.Customer, error)
	Create(ctx context.Context, name, phone string, isGold bool) (model.Customer, error)
	Update(ctx context.Context, id uint64, name, phone string, isGold bool) (model.Customer, error)
	Delete(ctx context.Context, id uint64) error
}

type CustomerHandler struct {
	Customers CustomerStore
}

func NewCustomerHandler(s CustomerStore) *CustomerHandler { return &CustomerHandler{Customers: s} }

type customerReq struct {
	Name   string `json:"name" validate:"required,min=5,max=50"`
	Phone  string `json:"phone" validate:"required,min=5,max=50"`
	IsGold bool   `json:"isGold"`
}

// List returns all customers sorted by name.
func (h *CustomerHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	customers, err := h.Customers.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	customer, err := h.Customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	customer, err := h.Customers.Create(ctx, req.Name, req.Phone, req.IsGold)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create customer failed"})
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	customer, err := h.Customers.Update(ctx, id, req.Name, req.Phone, req.IsGold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update customer failed"})
	}
	return c.JSON(http.StatusOK, customer)
}

// Delete removes a customer. Admin only; the role gate lives in the
// route registration.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Customers.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete customer failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
