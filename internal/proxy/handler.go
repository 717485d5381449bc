// Package proxy exposes a generic JSON fetch passthrough used by the
// frontend to reach APIs that do not send CORS headers.
package proxy

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	httpClient *http.Client
}

func NewHandler() *Handler {
	return &Handler{httpClient: &http.Client{Timeout: 10 * time.Second}}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/proxy", h.fetch)
}

type proxyRequest struct {
	URL string `json:"url"`
}

// fetch GETs the requested URL and returns its JSON body verbatim.
// There is no destination allowlist, so any reachable host can be fetched
// through this endpoint; see DESIGN.md before exposing it publicly.
func (h *Handler) fetch(c *fiber.Ctx) error {
	payload := new(proxyRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	resp, err := h.httpClient.Get(payload.URL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	defer resp.Body.Close()

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
