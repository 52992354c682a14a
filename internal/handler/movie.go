package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmreel/video-rental/internal/model"
)

// MovieStore is the persistence surface the movie endpoints need.
// *repository.MovieRepo implements it.
type MovieStore interface {
	List(ctx context.Context) ([]model.Movie, error)
	GetByID(ctx context.Context, id uint64) (model.Movie, error)
	Create(ctx context.Context, title string, genre model.GenreSnapshot, stock int, rate float64) (model.Movie, error)
	Update(ctx context.Context, id uint64, title string, genre model.GenreSnapshot, stock int, rate float64) (model.Movie, error)
	Delete(ctx context.Context, id uint64) error
}

// MovieHandler also needs the genre store: create and update resolve
// the referenced genre and embed a fresh {id, name} snapshot.
type MovieHandler struct {
	Movies MovieStore
	Genres GenreStore
}

func NewMovieHandler(m MovieStore, g GenreStore) *MovieHandler {
	return &MovieHandler{Movies: m, Genres: g}
}

type movieReq struct {
	Title           string  `json:"title" validate:"required,min=5,max=50"`
	GenreID         uint64  `json:"genreId" validate:"required"`
	NumberInStock   int     `json:"numberInStock" validate:"min=0,max=255"`
	DailyRentalRate float64 `json:"dailyRentalRate" validate:"min=0,max=255"`
}

// resolveGenre loads the referenced genre and turns it into a snapshot.
// A missing genre is a client error on the movie payload, not a 404.
func (h *MovieHandler) resolveGenre(ctx context.Context, id uint64) (model.GenreSnapshot, error) {
	g, err := h.Genres.GetByID(ctx, id)
	if err != nil {
		return model.GenreSnapshot{}, err
	}
	return model.GenreSnapshot{ID: g.ID, Name: g.Name}, nil
}

func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	movies, err := h.Movies.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, movies)
}

func (h *MovieHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, movie)
}

func (h *MovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	snap, err := h.resolveGenre(ctx, req.GenreID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	movie, err := h.Movies.Create(ctx, req.Title, snap, req.NumberInStock, req.DailyRentalRate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, movie)
}

func (h *MovieHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	snap, err := h.resolveGenre(ctx, req.GenreID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	movie, err := h.Movies.Update(ctx, id, req.Title, snap, req.NumberInStock, req.DailyRentalRate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.JSON(http.StatusOK, movie)
}

// Delete removes a movie. Admin only; the role gate lives in the route
// registration. Rentals keep their embedded snapshot of the movie.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Movies.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
