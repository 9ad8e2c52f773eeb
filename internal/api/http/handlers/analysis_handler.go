package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/datachat-gateway/internal/auth"
	"github.com/spec-kit/datachat-gateway/internal/service"
	apperrors "github.com/spec-kit/datachat-gateway/pkg/util"
)

// AnalysisHandler forwards analysis requests to the external backend.
type AnalysisHandler struct {
	analysis *service.AnalysisService
}

// NewAnalysisHandler constructs the handler.
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysisService}
}

// Forward handles POST /api/v1/analysis/:op.
func (h *AnalysisHandler) Forward(c *fiber.Ctx) error {
	if _, ok := auth.UserIDFromContext(c); !ok {
		return apperrors.NewUnauthorized("You are not logged in")
	}

	result, err := h.analysis.Forward(
		c.UserContext(),
		c.Params("op"),
		c.Get(fiber.HeaderContentType),
		c.Body(),
	)
	if err != nil {
		return err
	}

	if result.ContentType != "" {
		c.Set(fiber.HeaderContentType, result.ContentType)
	}
	return c.Status(result.Status).Send(result.Body)
}
