package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grouplabel/grouplabel/server/service/label"
)

// JoinGroupRequest adds a subject to a group. Duration ("7d", "1h30m") and
// Until are mutually exclusive; both absent means permanent.
type JoinGroupRequest struct {
	Group    string     `json:"group"`
	Duration string     `json:"duration,omitempty"`
	Until    *time.Time `json:"until,omitempty"`
}

// LabelResponse carries a freshly resolved prefix.
type LabelResponse struct {
	SubjectID string `json:"subject_id"`
	Label     string `json:"label"`
}

// JoinGroup joins the subject to a group and returns the new label.
// POST /api/v1/subjects/:uuid/memberships
func (s *APIV1Service) JoinGroup(c echo.Context) error {
	subjectID, err := subjectUUIDParam(c)
	if err != nil {
		return errorResponse(c, err)
	}
	var req JoinGroupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request"})
	}
	if req.Group == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "group is required"})
	}
	if req.Duration != "" && req.Until != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "duration and until are mutually exclusive"})
	}

	expiry := req.Until
	if req.Duration != "" {
		d, err := label.ParseJoinDuration(req.Duration)
		if err != nil {
			return errorResponse(c, err)
		}
		until := time.Now().Add(d)
		expiry = &until
	}

	prefix, err := s.LabelService.OnJoinGroupName(c.Request().Context(), subjectID, req.Group, expiry)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, LabelResponse{SubjectID: subjectID, Label: prefix})
}

// LeaveGroup removes the subject from a group (all duplicate memberships at
// once) and returns the new label. Leaving a group the subject is not in
// succeeds as a no-op.
// DELETE /api/v1/subjects/:uuid/memberships/:group
func (s *APIV1Service) LeaveGroup(c echo.Context) error {
	subjectID, err := subjectUUIDParam(c)
	if err != nil {
		return errorResponse(c, err)
	}
	group, err := s.Store.GetGroupByName(c.Request().Context(), c.Param("group"))
	if err != nil {
		return errorResponse(c, err)
	}

	prefix, err := s.LabelService.OnLeave(c.Request().Context(), subjectID, group.ID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, LabelResponse{SubjectID: subjectID, Label: prefix})
}

// ListSubjectGroups lists the subject's live groups by ascending weight.
// GET /api/v1/subjects/:uuid/groups
func (s *APIV1Service) ListSubjectGroups(c echo.Context) error {
	subjectID, err := subjectUUIDParam(c)
	if err != nil {
		return errorResponse(c, err)
	}
	groups, err := s.LabelService.LiveGroups(c.Request().Context(), subjectID)
	if err != nil {
		return errorResponse(c, err)
	}
	list := make([]*GroupResponse, 0, len(groups))
	for _, group := range groups {
		list = append(list, toGroupResponse(group))
	}
	return c.JSON(http.StatusOK, list)
}
