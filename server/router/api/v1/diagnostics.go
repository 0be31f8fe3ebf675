package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// OrphanMembershipResponse reports a membership whose group no longer exists.
type OrphanMembershipResponse struct {
	SubjectID string     `json:"subject_id"`
	GroupID   int32      `json:"group_id"`
	JoinUntil *time.Time `json:"join_until,omitempty"`
}

// ListOrphanMemberships lists memberships pointing at deleted groups. These
// rows are harmless for resolution but signal missing cleanup after group
// deletion.
// GET /api/v1/diagnostics/orphans
func (s *APIV1Service) ListOrphanMemberships(c echo.Context) error {
	orphans, err := s.Store.ListOrphanMemberships(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	list := make([]*OrphanMembershipResponse, 0, len(orphans))
	for _, m := range orphans {
		list = append(list, &OrphanMembershipResponse{
			SubjectID: m.SubjectID,
			GroupID:   m.GroupID,
			JoinUntil: m.JoinUntil,
		})
	}
	return c.JSON(http.StatusOK, list)
}
