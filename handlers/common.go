package handlers

import (
	"errors"
	"log"

	"github.com/brianodhiambo/driving_school/database"
	"github.com/brianodhiambo/driving_school/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func bookingService() *services.BookingService {
	return services.NewBookingService(database.DB)
}

func membershipService() *services.MembershipService {
	return services.NewMembershipService(database.DB)
}

// serviceError translates a workflow failure into the API's error shape.
// Workflow kinds keep their stable names on the wire; anything else is a
// plain 500.
func serviceError(c *fiber.Ctx, err error) error {
	var werr *services.Error
	if errors.As(err, &werr) {
		return c.Status(werr.Kind.HTTPStatus()).JSON(fiber.Map{
			"error_kind": string(werr.Kind),
			"error":      werr.Detail,
		})
	}
	log.Printf("🔥 Unexpected error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
