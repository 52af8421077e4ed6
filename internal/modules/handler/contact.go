package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge-studio/studio-api/internal/modules/serializer"
	"github.com/pixelforge-studio/studio-api/internal/modules/service"
)

type ContactHandler struct {
	svc service.ContactService
}

func NewContactHandler(s service.ContactService) *ContactHandler {
	return &ContactHandler{svc: s}
}

type SubmitContactReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message" binding:"required"`
}

// Submit godoc
//
//	@Summary	Submit a contact-form message
//	@Tags		public
//	@Accept		json
//	@Produce	json
//	@Param		body	body	SubmitContactReq	true	"Message"
//	@Success	200	{object}	serializer.Response{data=model.ContactMessage}
//	@Failure	400	{object}	serializer.Response
//	@Router		/contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	req := SubmitContactReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	msg, err := h.svc.Submit(c.Request.Context(), service.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Service: req.Service,
		Message: req.Message,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: msg})
}

type ListContactsReq struct {
	Limit  int    `form:"limit,default=50" json:"limit" binding:"omitempty,min=1,max=50"`
	Cursor string `form:"cursor" json:"cursor"`
}

// List godoc
//
//	@Summary	List contact messages, newest first
//	@Tags		admin
//	@Produce	json
//	@Param		limit	query	integer	false	"Page size, max 50"
//	@Param		cursor	query	string	false	"Cursor from the previous page"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=service.ContactPage}
//	@Failure	400	{object}	serializer.Response
//	@Router		/admin/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	req := ListContactsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	page, err := h.svc.List(c.Request.Context(), req.Cursor, req.Limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: page})
}

type UpdateContactStatusReq struct {
	Status string `json:"status" binding:"required,oneof=new contacted converted archived"`
}

// UpdateStatus godoc
//
//	@Summary	Move a contact message through the pipeline
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		message_id	path	integer					true	"Message ID"
//	@Param		body		body	UpdateContactStatusReq	true	"New status"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.ContactMessage}
//	@Failure	404	{object}	serializer.Response
//	@Router		/admin/contacts/{message_id}/status [patch]
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	messageID, ok := pathID(c, "message_id")
	if !ok {
		return
	}
	req := UpdateContactStatusReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	msg, err := h.svc.UpdateStatus(c.Request.Context(), messageID, req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: msg})
}
