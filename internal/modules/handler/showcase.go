package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge-studio/studio-api/internal/modules/serializer"
	"github.com/pixelforge-studio/studio-api/internal/modules/service"
)

type ShowcaseHandler struct {
	svc service.ShowcaseService
}

func NewShowcaseHandler(s service.ShowcaseService) *ShowcaseHandler {
	return &ShowcaseHandler{svc: s}
}

// ListShowcase godoc
//
//	@Summary	List showcase projects
//	@Tags		public
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.ShowcaseProject}
//	@Router		/showcase [get]
func (h *ShowcaseHandler) ListShowcase(c *gin.Context) {
	projects, err := h.svc.ListShowcase(c.Request.Context(), false)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

// ListFeaturedShowcase godoc
//
//	@Summary	List featured showcase projects
//	@Tags		public
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.ShowcaseProject}
//	@Router		/showcase/featured [get]
func (h *ShowcaseHandler) ListFeaturedShowcase(c *gin.Context) {
	projects, err := h.svc.ListShowcase(c.Request.Context(), true)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

type CreateShowcaseReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"image_url" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Featured    bool   `json:"featured"`
}

// CreateShowcase godoc
//
//	@Summary	Add a showcase project
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		body	body	CreateShowcaseReq	true	"Showcase project"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.ShowcaseProject}
//	@Failure	400	{object}	serializer.Response
//	@Router		/admin/showcase [post]
func (h *ShowcaseHandler) CreateShowcase(c *gin.Context) {
	req := CreateShowcaseReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	project, err := h.svc.CreateShowcase(c.Request.Context(), service.CreateShowcaseInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Featured:    req.Featured,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

// ListTestimonials godoc
//
//	@Summary	List testimonials
//	@Tags		public
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.Testimonial}
//	@Router		/testimonials [get]
func (h *ShowcaseHandler) ListTestimonials(c *gin.Context) {
	testimonials, err := h.svc.ListTestimonials(c.Request.Context(), false)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: testimonials})
}

// ListFeaturedTestimonials godoc
//
//	@Summary	List featured testimonials
//	@Tags		public
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.Testimonial}
//	@Router		/testimonials/featured [get]
func (h *ShowcaseHandler) ListFeaturedTestimonials(c *gin.Context) {
	testimonials, err := h.svc.ListTestimonials(c.Request.Context(), true)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: testimonials})
}

type CreateTestimonialReq struct {
	Name      string `json:"name" binding:"required"`
	Position  string `json:"position" binding:"required"`
	Company   string `json:"company" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Rating    int    `json:"rating" binding:"omitempty,min=1,max=5"`
	AvatarURL string `json:"avatar_url"`
	Featured  bool   `json:"featured"`
}

// CreateTestimonial godoc
//
//	@Summary	Add a testimonial
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		body	body	CreateTestimonialReq	true	"Testimonial"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.Testimonial}
//	@Failure	400	{object}	serializer.Response
//	@Router		/admin/testimonials [post]
func (h *ShowcaseHandler) CreateTestimonial(c *gin.Context) {
	req := CreateTestimonialReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	testimonial, err := h.svc.CreateTestimonial(c.Request.Context(), service.CreateTestimonialInput{
		Name:      req.Name,
		Position:  req.Position,
		Company:   req.Company,
		Content:   req.Content,
		Rating:    req.Rating,
		AvatarURL: req.AvatarURL,
		Featured:  req.Featured,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: testimonial})
}
