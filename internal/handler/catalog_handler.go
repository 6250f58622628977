package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// action=all のみ
func (h *CatalogHandler) categories(c echo.Context) error {
	if action(c, "all") != "all" {
		return invalidAction(c)
	}

	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", out)
}

// action=all|single
func (h *CatalogHandler) artisans(c echo.Context) error {
	switch action(c, "all") {
	case "all":
		as, err := h.uc.ListArtisans(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, "", map[string]any{"artisans": as, "count": len(as)})
	case "single":
		a, err := h.uc.GetArtisan(c.Request().Context(), queryInt64(c, "id"))
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, "", map[string]any{"artisan": a})
	default:
		return invalidAction(c)
	}
}
