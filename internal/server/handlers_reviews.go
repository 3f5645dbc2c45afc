package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ctonneslan/letterboxd-clone/internal/app"
	"github.com/ctonneslan/letterboxd-clone/internal/domain"
	apperrors "github.com/ctonneslan/letterboxd-clone/internal/errors"
)

func (s *Server) handleCreateReview(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	tmdbID, err := tmdbIDParam(c)
	if err != nil {
		return err
	}

	var input app.CreateReviewInput
	if err := c.Bind(&input); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	review, err := s.app.CreateReview(c.Request().Context(), userID, tmdbID, input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, toReviewView(review))
}

func (s *Server) handleGetReview(c echo.Context) error {
	reviewID, err := uuidParam(c, "reviewId")
	if err != nil {
		return err
	}

	review, err := s.app.GetReview(c.Request().Context(), reviewID, viewerID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toReviewView(review))
}

func (s *Server) handleGetMyMovieReview(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	tmdbID, err := tmdbIDParam(c)
	if err != nil {
		return err
	}

	review, err := s.app.GetMyMovieReview(c.Request().Context(), userID, tmdbID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toReviewView(review))
}

func (s *Server) handleListMovieReviews(c echo.Context) error {
	tmdbID, err := tmdbIDParam(c)
	if err != nil {
		return err
	}
	limit, offset := paginationQuery(c)

	reviews, err := s.app.ListMovieReviews(c.Request().Context(), tmdbID, viewerID(c), limit, offset)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toReviewViews(reviews))
}

func (s *Server) handleListUserReviews(c echo.Context) error {
	limit, offset := paginationQuery(c)

	reviews, err := s.app.ListUserReviews(c.Request().Context(), c.Param("username"), viewerID(c), limit, offset)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toReviewViews(reviews))
}

func (s *Server) handleUpdateReview(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	reviewID, err := uuidParam(c, "reviewId")
	if err != nil {
		return err
	}

	var patch domain.ReviewPatch
	if err := c.Bind(&patch); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	review, err := s.app.UpdateReview(c.Request().Context(), userID, reviewID, patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toReviewView(review))
}

func (s *Server) handleDeleteReview(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	reviewID, err := uuidParam(c, "reviewId")
	if err != nil {
		return err
	}

	if err := s.app.DeleteReview(c.Request().Context(), userID, reviewID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleLikeReview(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	reviewID, err := uuidParam(c, "reviewId")
	if err != nil {
		return err
	}

	count, err := s.app.LikeReview(c.Request().Context(), userID, reviewID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, map[string]any{"status": "liked", "likeCount": count})
}

func (s *Server) handleUnlikeReview(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	reviewID, err := uuidParam(c, "reviewId")
	if err != nil {
		return err
	}

	count, err := s.app.UnlikeReview(c.Request().Context(), userID, reviewID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]any{"status": "unliked", "likeCount": count})
}
