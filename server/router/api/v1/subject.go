package v1

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/grouplabel/grouplabel/store"
)

// SubjectResponse is the API shape of a subject.
type SubjectResponse struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
}

// UpsertSubjectRequest registers a subject or renames an existing one.
type UpsertSubjectRequest struct {
	Name string `json:"name"`
}

// SetLanguageRequest switches the subject's language by language code.
type SetLanguageRequest struct {
	Code string `json:"code"`
}

func subjectUUIDParam(c echo.Context) (string, error) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return "", store.NewValidationError("invalid subject uuid: %s", c.Param("uuid"))
	}
	return id.String(), nil
}

// UpsertSubject creates the subject on first sight and joins it to the
// default group, or updates the stored name on later calls.
// PUT /api/v1/subjects/:uuid
func (s *APIV1Service) UpsertSubject(c echo.Context) error {
	subjectID, err := subjectUUIDParam(c)
	if err != nil {
		return errorResponse(c, err)
	}
	var req UpsertSubjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	subject, err := s.Store.UpsertSubject(c.Request().Context(), &store.Subject{UUID: subjectID, Name: req.Name})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, s.toSubjectResponse(c, subject))
}

// GetSubject returns the stored subject.
// GET /api/v1/subjects/:uuid
func (s *APIV1Service) GetSubject(c echo.Context) error {
	subjectID, err := subjectUUIDParam(c)
	if err != nil {
		return errorResponse(c, err)
	}
	subject, err := s.Store.GetSubject(c.Request().Context(), subjectID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, s.toSubjectResponse(c, subject))
}

// GetLabel resolves the subject's current display prefix, served from the
// label cache when warm.
// GET /api/v1/subjects/:uuid/label
func (s *APIV1Service) GetLabel(c echo.Context) error {
	subjectID, err := subjectUUIDParam(c)
	if err != nil {
		return errorResponse(c, err)
	}
	prefix, err := s.LabelService.ResolveLabel(c.Request().Context(), subjectID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, LabelResponse{SubjectID: subjectID, Label: prefix})
}

// RefreshLabel drops any cached prefix and resolves a fresh one.
// POST /api/v1/subjects/:uuid/label/refresh
func (s *APIV1Service) RefreshLabel(c echo.Context) error {
	subjectID, err := subjectUUIDParam(c)
	if err != nil {
		return errorResponse(c, err)
	}
	prefix, err := s.LabelService.ForceRefresh(c.Request().Context(), subjectID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, LabelResponse{SubjectID: subjectID, Label: prefix})
}

// SetSubjectLanguage switches the subject's language.
// PUT /api/v1/subjects/:uuid/language
func (s *APIV1Service) SetSubjectLanguage(c echo.Context) error {
	subjectID, err := subjectUUIDParam(c)
	if err != nil {
		return errorResponse(c, err)
	}
	var req SetLanguageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request"})
	}
	if req.Code == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "code is required"})
	}
	if err := s.Store.SetSubjectLanguage(c.Request().Context(), subjectID, req.Code); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) toSubjectResponse(c echo.Context, subject *store.Subject) *SubjectResponse {
	resp := &SubjectResponse{UUID: subject.UUID, Name: subject.Name}
	if subject.LanguageID != nil {
		// Best effort. A missing language row just leaves the field empty.
		if language, err := s.Store.GetSubjectLanguage(c.Request().Context(), subject.UUID); err == nil && language != nil {
			resp.Language = language.Code
		}
	}
	return resp
}
