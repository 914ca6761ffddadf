package utils

import "github.com/gofiber/fiber/v2"

// APIResponse describes the common structure for successful API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// APIError is the structure returned for failed requests. Code carries a
// machine-readable reason for business-rule failures so clients can branch
// (for example, offering login instead of registration). CanLogin hints
// that the caller already holds an account.
type APIError struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Code     string `json:"code,omitempty"`
	CanLogin bool   `json:"can_login,omitempty"`
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

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIError{
		Success: false,
		Error:   message,
	})
}

// SendBusinessError sends an expected business-rule failure carrying a
// machine-readable code.
func SendBusinessError(c *fiber.Ctx, status int, message, code string, canLogin bool) error {
	return c.Status(status).JSON(APIError{
		Success:  false,
		Error:    message,
		Code:     code,
		CanLogin: canLogin,
	})
}
