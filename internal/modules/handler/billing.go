package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge-studio/studio-api/internal/middleware"
	"github.com/pixelforge-studio/studio-api/internal/modules/serializer"
	"github.com/pixelforge-studio/studio-api/internal/modules/service"
)

type BillingHandler struct {
	billing service.BillingService
	portal  service.PortalService
}

func NewBillingHandler(billing service.BillingService, portal service.PortalService) *BillingHandler {
	return &BillingHandler{billing: billing, portal: portal}
}

type CreateIntentReq struct {
	// Amount in minor units; zero means the outstanding balance.
	Amount int64 `json:"amount" binding:"omitempty,min=1"`
}

// CreateIntent godoc
//
//	@Summary		Create a payment intent for one of the client's projects
//	@Description	Returns the gateway handle the browser completes payment with. The paid amount moves only when the gateway confirmation arrives.
//	@Tags			portal
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	integer			true	"Project ID"
//	@Param			body		body	CreateIntentReq	true	"Amount"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.IntentResult}
//	@Failure		400	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/portal/projects/{project_id}/payment_intents [post]
func (h *BillingHandler) CreateIntent(c *gin.Context) {
	clientID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	req := CreateIntentReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	// Ownership check first so foreign projects read as 404.
	if _, err := h.portal.GetProject(c.Request.Context(), projectID, clientID); err != nil {
		respondErr(c, err)
		return
	}

	intent, err := h.billing.CreateIntent(c.Request.Context(), service.CreateIntentInput{
		ProjectID: projectID,
		Amount:    req.Amount,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: intent})
}

type CreatePublicIntentReq struct {
	// Amount in minor units.
	Amount  int64  `json:"amount" binding:"required,min=1"`
	Package string `json:"package" binding:"required"`
}

// CreatePublicIntent godoc
//
//	@Summary		Create a payment intent for a package checkout
//	@Description	Marketing-site checkout; no project exists yet, so nothing is credited until the gateway confirms.
//	@Tags			public
//	@Accept			json
//	@Produce		json
//	@Param			body	body	CreatePublicIntentReq	true	"Amount and package"
//	@Success		200	{object}	serializer.Response{data=service.IntentResult}
//	@Failure		400	{object}	serializer.Response
//	@Router			/payments/intent [post]
func (h *BillingHandler) CreatePublicIntent(c *gin.Context) {
	req := CreatePublicIntentReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	intent, err := h.billing.CreatePublicIntent(c.Request.Context(), req.Amount, req.Package)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: intent})
}

// ListEvents godoc
//
//	@Summary	List payment events recorded for a project
//	@Tags		admin
//	@Produce	json
//	@Param		project_id	path	integer	true	"Project ID"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.PaymentEvent}
//	@Failure	404	{object}	serializer.Response
//	@Router		/admin/projects/{project_id}/payment_events [get]
func (h *BillingHandler) ListEvents(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	events, err := h.billing.ListEvents(c.Request.Context(), projectID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: events})
}
