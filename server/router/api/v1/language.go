package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grouplabel/grouplabel/store"
)

// LanguageResponse is the API shape of a language.
type LanguageResponse struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// CreateLanguageRequest registers a language.
type CreateLanguageRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func toLanguageResponse(language *store.Language) *LanguageResponse {
	return &LanguageResponse{ID: language.ID, Name: language.Name, Code: language.Code}
}

// CreateLanguage registers a new language.
// POST /api/v1/languages
func (s *APIV1Service) CreateLanguage(c echo.Context) error {
	var req CreateLanguageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request"})
	}
	if req.Name == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name and code are required"})
	}

	language, err := s.Store.CreateLanguage(c.Request().Context(), &store.Language{Name: req.Name, Code: req.Code})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, toLanguageResponse(language))
}

// ListLanguages lists all registered languages.
// GET /api/v1/languages
func (s *APIV1Service) ListLanguages(c echo.Context) error {
	languages, err := s.Store.ListLanguages(c.Request().Context(), &store.FindLanguage{})
	if err != nil {
		return errorResponse(c, err)
	}
	list := make([]*LanguageResponse, 0, len(languages))
	for _, language := range languages {
		list = append(list, toLanguageResponse(language))
	}
	return c.JSON(http.StatusOK, list)
}
