package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// okResponse is the success envelope shared by every endpoint.
type okResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, okResponse{Status: "ok", Data: data})
}
