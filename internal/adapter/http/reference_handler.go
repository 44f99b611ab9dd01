package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ranjithui/rental-loan-calculator/internal/reference"
)

// ReferenceHandler serves the static lookup tables clients use to auto-fill
// the input form: segment presets and the display-currency table.
type ReferenceHandler struct{ ref reference.Tables }

func NewReferenceHandler(ref reference.Tables) *ReferenceHandler {
	return &ReferenceHandler{ref: ref}
}

func (h *ReferenceHandler) ListSegments(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"segments": h.ref.Segments})
}

func (h *ReferenceHandler) ListCurrencies(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"base_currency": h.ref.BaseCurrency,
		"currencies":    h.ref.Currencies,
	})
}
