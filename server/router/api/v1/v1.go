// Package v1 exposes the engine over a small JSON API.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/grouplabel/grouplabel/server/service/label"
	"github.com/grouplabel/grouplabel/store"
)

// APIV1Service holds the handlers for /api/v1.
type APIV1Service struct {
	Store        *store.Store
	LabelService *label.Service
}

// NewAPIV1Service creates the v1 API surface.
func NewAPIV1Service(st *store.Store, labelService *label.Service) *APIV1Service {
	return &APIV1Service{
		Store:        st,
		LabelService: labelService,
	}
}

// RegisterRoutes registers all v1 routes on the given group.
func (s *APIV1Service) RegisterRoutes(g *echo.Group) {
	g.POST("/groups", s.CreateGroup)
	g.GET("/groups", s.ListGroups)
	g.GET("/groups/names", s.ListGroupNames)
	g.GET("/groups/:id", s.GetGroup)
	g.PATCH("/groups/:id", s.UpdateGroup)
	g.DELETE("/groups/:id", s.DeleteGroup)

	g.PUT("/subjects/:uuid", s.UpsertSubject)
	g.GET("/subjects/:uuid", s.GetSubject)
	g.GET("/subjects/:uuid/label", s.GetLabel)
	g.POST("/subjects/:uuid/label/refresh", s.RefreshLabel)
	g.GET("/subjects/:uuid/groups", s.ListSubjectGroups)
	g.POST("/subjects/:uuid/memberships", s.JoinGroup)
	g.DELETE("/subjects/:uuid/memberships/:group", s.LeaveGroup)
	g.PUT("/subjects/:uuid/language", s.SetSubjectLanguage)

	g.POST("/languages", s.CreateLanguage)
	g.GET("/languages", s.ListLanguages)

	g.POST("/signs", s.CreateSign)
	g.GET("/signs", s.ListSigns)
	g.DELETE("/signs", s.DeleteSign)

	g.GET("/diagnostics/orphans", s.ListOrphanMemberships)
}

// errorResponse maps engine errors onto HTTP statuses: missing records are
// 404, unique-name collisions 409, validation failures 400, anything else
// is a storage-level 500.
func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrAlreadyExists):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case store.IsValidation(err):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
