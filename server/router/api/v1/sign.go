package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/grouplabel/grouplabel/store"
)

// SignResponse is the API shape of a registered sign location.
type SignResponse struct {
	ID    int32  `json:"id"`
	World string `json:"world"`
	PosX  int32  `json:"pos_x"`
	PosY  int32  `json:"pos_y"`
	PosZ  int32  `json:"pos_z"`
}

// CreateSignRequest registers a sign location.
type CreateSignRequest struct {
	World string `json:"world"`
	PosX  int32  `json:"pos_x"`
	PosY  int32  `json:"pos_y"`
	PosZ  int32  `json:"pos_z"`
}

func toSignResponse(sign *store.Sign) *SignResponse {
	return &SignResponse{ID: sign.ID, World: sign.World, PosX: sign.PosX, PosY: sign.PosY, PosZ: sign.PosZ}
}

// CreateSign registers a sign location.
// POST /api/v1/signs
func (s *APIV1Service) CreateSign(c echo.Context) error {
	var req CreateSignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request"})
	}
	if req.World == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "world is required"})
	}

	sign, err := s.Store.CreateSign(c.Request().Context(), &store.Sign{
		World: req.World,
		PosX:  req.PosX,
		PosY:  req.PosY,
		PosZ:  req.PosZ,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, toSignResponse(sign))
}

// ListSigns lists all registered sign locations.
// GET /api/v1/signs
func (s *APIV1Service) ListSigns(c echo.Context) error {
	signs, err := s.Store.ListSigns(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	list := make([]*SignResponse, 0, len(signs))
	for _, sign := range signs {
		list = append(list, toSignResponse(sign))
	}
	return c.JSON(http.StatusOK, list)
}

// DeleteSign unregisters a sign by world and coordinates.
// DELETE /api/v1/signs?world=w&x=1&y=2&z=3
func (s *APIV1Service) DeleteSign(c echo.Context) error {
	world := c.QueryParam("world")
	if world == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "world is required"})
	}
	x, errX := strconv.ParseInt(c.QueryParam("x"), 10, 32)
	y, errY := strconv.ParseInt(c.QueryParam("y"), 10, 32)
	z, errZ := strconv.ParseInt(c.QueryParam("z"), 10, 32)
	if errX != nil || errY != nil || errZ != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "x, y and z must be integers"})
	}

	err := s.Store.DeleteSign(c.Request().Context(), &store.DeleteSign{
		World: world,
		PosX:  int32(x),
		PosY:  int32(y),
		PosZ:  int32(z),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
