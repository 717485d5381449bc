package user

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/gjone124/restaurant-finder-backend/internal/apperr"
	"github.com/gjone124/restaurant-finder-backend/internal/auth"
	"github.com/gjone124/restaurant-finder-backend/internal/validation"
)

// Default coordinates (Washington, DC) used when the client does not supply
// a position for the location endpoint.
const (
	defaultLatitude  = "38.89511"
	defaultLongitude = "-77.03637"
)

// geocoder resolves coordinates to a display-ready location string.
type geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng string) (string, error)
}

type Handler struct {
	service   *Service
	geo       geocoder
	jwtSecret string
}

func NewHandler(service *Service, geo geocoder, jwtSecret string) *Handler {
	return &Handler{service: service, geo: geo, jwtSecret: jwtSecret}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/signup", h.signup)
	app.Post("/signin", h.signin)
	// kept server side so the provider API key never reaches a browser
	app.Get("/users/location", h.getLocation)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/users/me", h.getCurrentUser)
	app.Patch("/users/me", h.updateProfile)
}

func (h *Handler) signup(c *fiber.Ctx) error {
	payload := new(validation.CreateUserRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.BadRequest(err.Error())
	}
	if err := validation.Check(*payload); err != nil {
		return err
	}

	newUser := User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	}
	if payload.Avatar != "" {
		newUser.Avatar = &payload.Avatar
	}

	created, err := h.service.Register(newUser)
	if err != nil {
		if err == ErrEmailExists {
			return apperr.Conflict("A user with this email address already exists.")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(sanitizeUser(created))
}

func (h *Handler) signin(c *fiber.Ctx) error {
	payload := new(validation.LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.BadRequest(err.Error())
	}
	if err := validation.Check(*payload); err != nil {
		return err
	}

	account, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		// same message for unknown email and wrong password
		return apperr.Unauthorized("Invalid email address or password.")
	}

	token, err := auth.IssueToken(h.jwtSecret, account.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"token": token})
}

func (h *Handler) getCurrentUser(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return apperr.Unauthorized("Authorization required.")
	}
	if !validation.IsValidID(userID) {
		return apperr.BadRequest("Invalid user ID format.")
	}

	account, err := h.service.GetByID(userID)
	if err != nil {
		if err == ErrNotFound {
			return apperr.NotFound("User not found.")
		}
		return err
	}

	return c.JSON(sanitizeUser(account))
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return apperr.Unauthorized("Authorization required.")
	}

	payload := new(validation.UpdateProfileRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.BadRequest(err.Error())
	}
	if err := validation.Check(*payload); err != nil {
		return err
	}

	var avatar *string
	if payload.Avatar != "" {
		avatar = &payload.Avatar
	}

	updated, err := h.service.UpdateProfile(userID, payload.Name, avatar)
	if err != nil {
		if err == ErrNotFound {
			return apperr.NotFound("User not found.")
		}
		return err
	}

	return c.JSON(sanitizeUser(updated))
}

func (h *Handler) getLocation(c *fiber.Ctx) error {
	// client-supplied coordinates echo back as the strings they arrived in;
	// the defaults go out as JSON numbers
	latitude := c.Query("lat")
	longitude := c.Query("lng")

	var latOut any = latitude
	if latitude == "" {
		latitude = defaultLatitude
		latOut = json.Number(defaultLatitude)
	}
	var lngOut any = longitude
	if longitude == "" {
		longitude = defaultLongitude
		lngOut = json.Number(defaultLongitude)
	}

	formatted, err := h.geo.ReverseGeocode(c.Context(), latitude, longitude)
	if err != nil {
		return apperr.BadRequest("Unable to retrieve location.")
	}

	return c.JSON(fiber.Map{
		"formattedLocation": formatted,
		"latitude":          latOut,
		"longitude":         lngOut,
	})
}

func sanitizeUser(user User) User {
	user.Password = ""
	return user
}
