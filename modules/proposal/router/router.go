package router

import (
	"yildizli-agac-api/core/middleware"
	"yildizli-agac-api/modules/proposal/controller"

	"github.com/labstack/echo/v4"
)

// ProposalRouter handles proposal routes
type ProposalRouter struct {
	ProposalController *controller.ProposalController
}

func NewProposalRouter(proposalController *controller.ProposalController) *ProposalRouter {
	return &ProposalRouter{
		ProposalController: proposalController,
	}
}

// Setup registers proposal routes
func (r *ProposalRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	proposalRoutes := privateRoutes.Group("/proposals", mw.AuthMiddleware())

	// Draft editing
	proposalRoutes.GET("/draft", r.ProposalController.GetDraft)
	proposalRoutes.DELETE("/draft", r.ProposalController.ResetDraft)
	proposalRoutes.POST("/draft/slots", r.ProposalController.AddSlot)
	proposalRoutes.DELETE("/draft/slots/:index", r.ProposalController.RemoveSlot)
	proposalRoutes.PATCH("/draft/slots/:index", r.ProposalController.UpdateSlot)
	proposalRoutes.POST("/draft/slots/:index/move", r.ProposalController.MoveSlot)
	proposalRoutes.PUT("/draft/slots/:index/picker", r.ProposalController.SetPicker)

	// Submission
	proposalRoutes.POST("/submit", r.ProposalController.Submit)
	proposalRoutes.GET("/submission", r.ProposalController.GetSubmission)
}
