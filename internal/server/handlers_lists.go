package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ctonneslan/letterboxd-clone/internal/app"
	"github.com/ctonneslan/letterboxd-clone/internal/domain"
	apperrors "github.com/ctonneslan/letterboxd-clone/internal/errors"
)

func (s *Server) handleCreateList(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var input app.CreateListInput
	if err := c.Bind(&input); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	list, err := s.app.CreateList(c.Request().Context(), userID, input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, toListView(list))
}

func (s *Server) handleGetList(c echo.Context) error {
	listID, err := uuidParam(c, "listId")
	if err != nil {
		return err
	}

	list, items, err := s.app.GetList(c.Request().Context(), listID, viewerID(c))
	if err != nil {
		return err
	}

	view := toListView(list)
	view.Items = make([]listItemView, 0, len(items))
	for _, item := range items {
		view.Items = append(view.Items, toListItemView(item))
	}
	return respond(c, http.StatusOK, view)
}

func (s *Server) handleListUserLists(c echo.Context) error {
	limit, offset := paginationQuery(c)

	lists, err := s.app.ListUserLists(c.Request().Context(), c.Param("username"), viewerID(c), limit, offset)
	if err != nil {
		return err
	}

	views := make([]listView, 0, len(lists))
	for _, list := range lists {
		views = append(views, toListView(list))
	}
	return respond(c, http.StatusOK, views)
}

func (s *Server) handleUpdateList(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	listID, err := uuidParam(c, "listId")
	if err != nil {
		return err
	}

	var patch domain.ListPatch
	if err := c.Bind(&patch); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	list, err := s.app.UpdateList(c.Request().Context(), userID, listID, patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toListView(list))
}

func (s *Server) handleDeleteList(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	listID, err := uuidParam(c, "listId")
	if err != nil {
		return err
	}

	if err := s.app.DeleteList(c.Request().Context(), userID, listID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAddListItem(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	listID, err := uuidParam(c, "listId")
	if err != nil {
		return err
	}

	var input struct {
		TMDBID int     `json:"tmdbId"`
		Notes  *string `json:"notes"`
	}
	if err := c.Bind(&input); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if input.TMDBID <= 0 {
		return apperrors.ValidationError("invalid movie id")
	}

	item, err := s.app.AddListItem(c.Request().Context(), userID, listID, input.TMDBID, input.Notes)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, toListItemView(item))
}

func (s *Server) handleRemoveListItem(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	listID, err := uuidParam(c, "listId")
	if err != nil {
		return err
	}
	tmdbID, err := tmdbIDParam(c)
	if err != nil {
		return err
	}

	if err := s.app.RemoveListItem(c.Request().Context(), userID, listID, tmdbID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]string{"status": "removed"})
}
