package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Response texts shared by the product endpoints.
const (
	MsgProductNotFound = "Producto no encontrado"
	MsgProductDeleted  = "Producto Eliminado"
	MsgInternalError   = "Error interno del servidor"
)

// ErrorHandler is the app-wide fault boundary. Errors returned by handlers
// end up here; anything that is not a *fiber.Error becomes a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := MsgInternalError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
