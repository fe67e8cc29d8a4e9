// Package http wires the REST API onto the services and translates domain
// errors to response codes at the boundary.
package http

import (
	"errors"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/auth"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type handlers struct {
	svcs *service.Services
}

func Register(app *fiber.App, svcs *service.Services, tokens *auth.JWTManager) {
	h := &handlers{svcs: svcs}

	// IoT device endpoints; no auth, plugs post with bare HTTP clients.
	app.Post("/pzem", h.submitReading)
	app.Get("/pzem", h.lastSample)

	dev := app.Group("/api/device")
	dev.Post("/pzem", h.submitReading)
	dev.Post("/data", h.submitReading)
	dev.Get("/pzem", h.lastSample)
	dev.Get("/readings/:deviceId", RequireAuth(tokens), h.listReadings)

	ath := app.Group("/api/auth")
	ath.Post("/signup", h.signup)
	ath.Post("/login", h.login)
	ath.Post("/create-user", RequireAuth(tokens), RequireAdmin(), h.createUser)
	ath.Patch("/change-password", RequireAuth(tokens), h.changePassword)

	usr := app.Group("/api/user", RequireAuth(tokens))
	usr.Get("/dashboard", h.userDashboard)
	usr.Get("/admin-dashboard", RequireAdmin(), h.adminDashboard)
	usr.Post("/add-device", RequireAdmin(), h.addDevice)
	usr.Put("/update-device/:deviceId", RequireAdmin(), h.updateDevice)
	usr.Delete("/delete-device/:deviceId", RequireAdmin(), h.deleteDevice)
	usr.Delete("/:userId", RequireAdmin(), h.deleteUser)
}

// fail maps domain errors onto the wire contract's status codes.
func fail(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": ve.Error()})
	case errors.Is(err, domain.ErrDuplicateDevice):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Device ID must be unique"})
	case errors.Is(err, domain.ErrDuplicateUser):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid credentials"})
	case errors.Is(err, domain.ErrAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	case errors.Is(err, domain.ErrDeviceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Device not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
}

func (h *handlers) submitReading(c *fiber.Ctx) error {
	echo, err := h.svcs.Ingest.Submit(c.UserContext(), c.Body())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok", "received": echo})
}

func (h *handlers) lastSample(c *fiber.Ctx) error {
	return c.JSON(h.svcs.Ingest.LastSample())
}

func (h *handlers) listReadings(c *fiber.Ctx) error {
	claims := ClaimsFrom(c)
	readings, err := h.svcs.Ingest.ReadingsForOwner(c.UserContext(), c.Params("deviceId"), claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(readings)
}

func (h *handlers) signup(c *fiber.Ctx) error {
	var req service.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("payload", err.Error()))
	}
	resp, err := h.svcs.Auth.Signup(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *handlers) login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("payload", err.Error()))
	}
	resp, err := h.svcs.Auth.Login(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *handlers) createUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("payload", err.Error()))
	}
	user, err := h.svcs.Auth.CreateUser(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully", "user": user})
}

func (h *handlers) changePassword(c *fiber.Ctx) error {
	var req service.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("payload", err.Error()))
	}
	claims := ClaimsFrom(c)
	if err := h.svcs.Auth.ChangePassword(c.UserContext(), claims.UserID, req); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

func (h *handlers) userDashboard(c *fiber.Ctx) error {
	claims := ClaimsFrom(c)
	view, err := h.svcs.Directory.UserView(c.UserContext(), claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

func (h *handlers) adminDashboard(c *fiber.Ctx) error {
	views, err := h.svcs.Directory.AdminView(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(views)
}

func (h *handlers) addDevice(c *fiber.Ctx) error {
	var req service.AddApplianceRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("payload", err.Error()))
	}
	device, err := h.svcs.Directory.AddAppliance(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Device added successfully", "device": device})
}

func (h *handlers) updateDevice(c *fiber.Ctx) error {
	var req service.UpdateApplianceRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("payload", err.Error()))
	}
	device, err := h.svcs.Directory.UpdateAppliance(c.UserContext(), c.Params("deviceId"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Device updated successfully", "device": device})
}

func (h *handlers) deleteDevice(c *fiber.Ctx) error {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("payload", err.Error()))
	}
	if err := h.svcs.Directory.DeleteAppliance(c.UserContext(), c.Params("deviceId"), req.UserID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Device deleted successfully"})
}

func (h *handlers) deleteUser(c *fiber.Ctx) error {
	if err := h.svcs.Directory.DeleteUser(c.UserContext(), c.Params("userId")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User and all associated appliances deleted successfully"})
}
