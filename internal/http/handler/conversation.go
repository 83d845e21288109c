package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"atlas/internal/service"
)

type conversationBody struct {
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
}

// Converse godoc
// @Summary  Send a message to the narrative engine
// @Tags     conversations
// @Accept   json
// @Produce  json
// @Param    body body conversationBody true "Message"
// @Success  200 {object} service.Reply
// @Failure  400 {object} errorPayload
// @Router   /conversations [post]
func Converse(svc service.ConversationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body conversationBody
		if err := c.BodyParser(&body); err != nil {
			return invalidBody(c)
		}
		reply, err := svc.Respond(c.UserContext(), language(c, body.Language), body.Message)
		if err != nil {
			if errors.Is(err, service.ErrMessageRequired) {
				return writeError(c, fiber.StatusBadRequest, "MESSAGE_REQUIRED", "message is required")
			}
			return internalError(c, err)
		}
		return c.JSON(reply)
	}
}
