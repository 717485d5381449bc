package item

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/gjone124/restaurant-finder-backend/internal/apperr"
	"github.com/gjone124/restaurant-finder-backend/internal/auth"
	"github.com/gjone124/restaurant-finder-backend/internal/places"
	"github.com/gjone124/restaurant-finder-backend/internal/validation"
)

// createItemErrorMessage lists every field constraint in one message when the
// store rejects an insert.
const createItemErrorMessage = "Error creating item. Invalid data. Ensure there is a valid name (2 to 100 characters), a valid cuisine (a String), a valid address (at least 5 characters), a valid image, a valid website, and a valid owner ID."

// restaurantSearcher runs the external places search for free-text queries.
type restaurantSearcher interface {
	SearchRestaurants(ctx context.Context, query string) ([]places.Place, error)
}

type Handler struct {
	service  *Service
	searcher restaurantSearcher
}

func NewHandler(service *Service, searcher restaurantSearcher) *Handler {
	return &Handler{service: service, searcher: searcher}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/items", h.getItems)
	// kept server side so the provider API key never reaches a browser
	app.Get("/items/:query", h.findRestaurants)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/items", h.createItem)
	app.Delete("/items/:itemId", h.deleteItem)
}

func (h *Handler) createItem(c *fiber.Ctx) error {
	owner, err := auth.UserIDFromCtx(c)
	if err != nil {
		return apperr.BadRequest("User is not authenticated.")
	}

	payload := new(validation.CreateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.BadRequest(err.Error())
	}
	if err := validation.Check(*payload); err != nil {
		return err
	}

	created, err := h.service.Create(Item{
		Name:    payload.Name,
		Cuisine: payload.Cuisine,
		Address: payload.Address,
		Image:   payload.Image,
		Website: payload.Website,
		Owner:   owner,
	})
	if err != nil {
		if err == ErrInvalidData {
			return apperr.BadRequest(createItemErrorMessage)
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getItems(c *fiber.Ctx) error {
	items, err := h.service.List()
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *Handler) deleteItem(c *fiber.Ctx) error {
	itemID := c.Params("itemId")
	if err := validation.ItemID(itemID); err != nil {
		return err
	}

	requester, err := auth.UserIDFromCtx(c)
	if err != nil {
		return apperr.Unauthorized("Authorization required.")
	}

	if err := h.service.Delete(itemID, requester); err != nil {
		switch err {
		case ErrNotFound:
			return apperr.NotFound("Item not found.")
		case ErrForbidden:
			return apperr.Forbidden("You do not have permission to delete this item.")
		case ErrInvalidID:
			return apperr.BadRequest("Invalid item ID.")
		}
		return err
	}

	return c.JSON(fiber.Map{"message": "Item deleted successfully."})
}

func (h *Handler) findRestaurants(c *fiber.Ctx) error {
	// route params arrive percent-encoded; a multi-word search like
	// "deep dish" reaches us as "deep%20dish"
	query, err := url.PathUnescape(c.Params("query"))
	if err != nil {
		return apperr.BadRequest("Unable to retrieve restaurant data.")
	}

	results, err := h.searcher.SearchRestaurants(c.Context(), query)
	if err != nil {
		return apperr.BadRequest("Unable to retrieve restaurant data.")
	}

	return c.JSON(results)
}
