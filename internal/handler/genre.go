package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmreel/video-rental/internal/model"
)

// GenreStore is the persistence surface the genre endpoints need.
// *repository.GenreRepo implements it. The movie endpoints reuse it to
// resolve genre snapshots.
type GenreStore interface {
	List(ctx context.Context) ([]model.Genre, error)
	GetByID(ctx context.Context, id uint64) (model.Genre, error)
	Create(ctx context.Context, name string) (model.Genre, error)
	Update(ctx context.Context, id uint64, name string) (model.Genre, error)
	Delete(ctx context.Context, id uint64) error
}

type GenreHandler struct {
	Genres GenreStore
}

func NewGenreHandler(s GenreStore) *GenreHandler { return &GenreHandler{Genres: s} }

type genreReq struct {
	Name string `json:"name" validate:"required,min=5,max=50"`
}

func (h *GenreHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	genres, err := h.Genres.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, genres)
}

func (h *GenreHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	genre, err := h.Genres.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, genre)
}

func (h *GenreHandler) Create(c echo.Context) error {
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	genre, err := h.Genres.Create(ctx, req.Name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create genre failed"})
	}
	return c.JSON(http.StatusCreated, genre)
}

func (h *GenreHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
	}
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	genre, err := h.Genres.Update(ctx, id, req.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update genre failed"})
	}
	return c.JSON(http.StatusOK, genre)
}

// Delete removes a genre. Admin only; the role gate lives in the route
// registration. Movies that embedded this genre keep their snapshot.
func (h *GenreHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Genres.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete genre failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
