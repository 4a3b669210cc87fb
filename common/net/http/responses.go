package http

import "github.com/gofiber/fiber/v2"

// errorBody is the wire shape every error helper below serializes to.
type errorBody struct {
	Code    string `json:"code,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK writes a 200 response with the given payload.
func OK(c *fiber.Ctx, payload any) error {
	return c.Status(fiber.StatusOK).JSON(payload)
}

// Created writes a 201 response with the given payload.
func Created(c *fiber.Ctx, payload any) error {
	return c.Status(fiber.StatusCreated).JSON(payload)
}

// NoContent writes a 204 response with an empty body.
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// BadRequest writes a 400 response. payload is any error value whose fields
// marshal to the error body (a ResponseError-shaped struct or similar).
func BadRequest(c *fiber.Ctx, payload any) error {
	return c.Status(fiber.StatusBadRequest).JSON(payload)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Code: code, Title: title, Message: message})
}

// Forbidden writes a 403 response.
func Forbidden(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(errorBody{Code: code, Title: title, Message: message})
}

// NotFound writes a 404 response.
func NotFound(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(errorBody{Code: code, Title: title, Message: message})
}

// Conflict writes a 409 response.
func Conflict(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusConflict).JSON(errorBody{Code: code, Title: title, Message: message})
}

// UnprocessableEntity writes a 422 response.
func UnprocessableEntity(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(errorBody{Code: code, Title: title, Message: message})
}

// UnprocessableSchema writes a 422 response whose body is the validation
// error itself (unknown fields, missing required fields).
func UnprocessableSchema(c *fiber.Ctx, payload any) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(payload)
}

// PayloadTooLarge writes a 413 response.
func PayloadTooLarge(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusRequestEntityTooLarge).JSON(errorBody{Code: code, Title: title, Message: message})
}

// JSONResponseError writes a ResponseError using its own embedded status code.
func JSONResponseError(c *fiber.Ctx, r ResponseError) error {
	code := r.Code
	if code == 0 {
		code = fiber.StatusInternalServerError
	}

	return c.Status(code).JSON(errorBody{Title: r.Title, Message: r.Message})
}

// InternalServerError writes a 500 response.
func InternalServerError(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Code: code, Title: title, Message: message})
}
