package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/grouplabel/grouplabel/store"
)

// GroupResponse is the JSON shape of a group.
type GroupResponse struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Prefix      string `json:"prefix"`
	Description string `json:"description"`
	Weight      int32  `json:"weight"`
}

func toGroupResponse(group *store.Group) *GroupResponse {
	return &GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Prefix:      group.Prefix,
		Description: group.Description,
		Weight:      group.Weight,
	}
}

// CreateGroupRequest is the payload for group creation.
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Prefix      string `json:"prefix"`
	Description string `json:"description"`
	Weight      int32  `json:"weight"`
}

// CreateGroup creates a group.
// POST /api/v1/groups
func (s *APIV1Service) CreateGroup(c echo.Context) error {
	var req CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	group, err := s.LabelService.CreateGroup(c.Request().Context(), &store.Group{
		Name:        req.Name,
		Prefix:      req.Prefix,
		Description: req.Description,
		Weight:      req.Weight,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, toGroupResponse(group))
}

// ListGroups lists all groups ordered by weight.
// GET /api/v1/groups
func (s *APIV1Service) ListGroups(c echo.Context) error {
	groups, err := s.Store.ListGroups(c.Request().Context(), &store.FindGroup{})
	if err != nil {
		return errorResponse(c, err)
	}
	list := make([]*GroupResponse, 0, len(groups))
	for _, group := range groups {
		list = append(list, toGroupResponse(group))
	}
	return c.JSON(http.StatusOK, list)
}

// ListGroupNames lists group names for completion UIs.
// GET /api/v1/groups/names
func (s *APIV1Service) ListGroupNames(c echo.Context) error {
	names, err := s.LabelService.ListGroupNames(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, names)
}

// GetGroup gets a group by id.
// GET /api/v1/groups/:id
func (s *APIV1Service) GetGroup(c echo.Context) error {
	id, err := groupIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid group id"})
	}
	group, err := s.Store.GetGroup(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, toGroupResponse(group))
}

// UpdateGroupRequest updates a single field from its string form, matching
// the admin command surface ("/group edit <id> <field> <value>").
type UpdateGroupRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateGroup updates one group field.
// PATCH /api/v1/groups/:id
func (s *APIV1Service) UpdateGroup(c echo.Context) error {
	id, err := groupIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid group id"})
	}
	var req UpdateGroupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request"})
	}

	group, err := s.LabelService.UpdateGroupField(c.Request().Context(), id, req.Field, req.Value)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, toGroupResponse(group))
}

// DeleteGroup deletes a group.
// DELETE /api/v1/groups/:id
func (s *APIV1Service) DeleteGroup(c echo.Context) error {
	id, err := groupIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid group id"})
	}
	if err := s.LabelService.DeleteGroup(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func groupIDParam(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}
