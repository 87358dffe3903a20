package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
)

// APIResponse describes the common structure for API responses. Pagination is
// present only on list endpoints.
type APIResponse struct {
	Success    bool                `json:"success"`
	Data       interface{}         `json:"data,omitempty"`
	Pagination *dto.PaginationMeta `json:"pagination,omitempty"`
	Message    string              `json:"message"`
}

// SendSuccess sends a successful JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendSuccessWithStatus sends a success payload using the provided HTTP status code.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendPage sends a successful list response with pagination metadata at the
// envelope level.
func SendPage(c *fiber.Ctx, message string, data interface{}, pagination dto.PaginationMeta) error {
	if message == "" {
		message = "success"
	}

	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success:    true,
		Data:       data,
		Pagination: &pagination,
		Message:    message,
	})
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
	})
}
