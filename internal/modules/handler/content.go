package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge-studio/studio-api/internal/modules/serializer"
	"github.com/pixelforge-studio/studio-api/internal/modules/service"
)

type ContentHandler struct {
	svc service.ContentService
}

func NewContentHandler(s service.ContentService) *ContentHandler {
	return &ContentHandler{svc: s}
}

type CreatePostReq struct {
	Title    string   `json:"title" binding:"required"`
	Slug     string   `json:"slug" binding:"required"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	CoverURL string   `json:"cover_url"`
	Status   string   `json:"status" binding:"omitempty,oneof=draft published archived"`
}

// CreatePost godoc
//
//	@Summary	Create a blog post
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		body	body	CreatePostReq	true	"Post"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.BlogPost}
//	@Failure	400	{object}	serializer.Response
//	@Router		/admin/blog [post]
func (h *ContentHandler) CreatePost(c *gin.Context) {
	req := CreatePostReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), service.CreatePostInput{
		Title:    req.Title,
		Slug:     req.Slug,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		CoverURL: req.CoverURL,
		Status:   req.Status,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: post})
}

type UpdatePostReq struct {
	Title    *string   `json:"title"`
	Slug     *string   `json:"slug"`
	Excerpt  *string   `json:"excerpt"`
	Content  *string   `json:"content"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
	CoverURL *string   `json:"cover_url"`
	Status   *string   `json:"status" binding:"omitempty,oneof=draft published archived"`
}

// UpdatePost godoc
//
//	@Summary		Update a blog post
//	@Description	Setting status to published stamps published_at on the first transition.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			post_id	path	integer			true	"Post ID"
//	@Param			body	body	UpdatePostReq	true	"Fields to change"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.BlogPost}
//	@Failure		400	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/admin/blog/{post_id} [patch]
func (h *ContentHandler) UpdatePost(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	req := UpdatePostReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	post, err := h.svc.UpdatePost(c.Request.Context(), postID, service.UpdatePostInput{
		Title:    req.Title,
		Slug:     req.Slug,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		CoverURL: req.CoverURL,
		Status:   req.Status,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: post})
}

// DeletePost godoc
//
//	@Summary	Delete a blog post
//	@Tags		admin
//	@Produce	json
//	@Param		post_id	path	integer	true	"Post ID"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response
//	@Failure	404	{object}	serializer.Response
//	@Router		/admin/blog/{post_id} [delete]
func (h *ContentHandler) DeletePost(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	if err := h.svc.DeletePost(c.Request.Context(), postID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}

// ListPosts godoc
//
//	@Summary	List all blog posts, drafts included
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.BlogPost}
//	@Router		/admin/blog [get]
func (h *ContentHandler) ListPosts(c *gin.Context) {
	posts, err := h.svc.ListPosts(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: posts})
}

// ListPublishedPosts godoc
//
//	@Summary	List published blog posts
//	@Tags		public
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.BlogPost}
//	@Router		/blog [get]
func (h *ContentHandler) ListPublishedPosts(c *gin.Context) {
	posts, err := h.svc.ListPublishedPosts(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: posts})
}

// GetPublishedPost godoc
//
//	@Summary		Get a published blog post by slug
//	@Description	Draft and archived slugs read as 404.
//	@Tags			public
//	@Produce		json
//	@Param			slug	path	string	true	"Post slug"
//	@Success		200	{object}	serializer.Response{data=model.BlogPost}
//	@Failure		404	{object}	serializer.Response
//	@Router			/blog/{slug} [get]
func (h *ContentHandler) GetPublishedPost(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("missing slug", nil))
		return
	}

	post, err := h.svc.GetPublishedPost(c.Request.Context(), slug)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: post})
}

type CreatePortfolioItemReq struct {
	Title        string   `json:"title" binding:"required"`
	Slug         string   `json:"slug" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	ImageURL     string   `json:"image_url"`
	ProjectURL   string   `json:"project_url"`
	Technologies []string `json:"technologies"`
	Featured     bool     `json:"featured"`
	Status       string   `json:"status" binding:"omitempty,oneof=active featured archived"`
	Order        int      `json:"order"`
}

// CreatePortfolioItem godoc
//
//	@Summary	Create a portfolio item
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		body	body	CreatePortfolioItemReq	true	"Portfolio item"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.PortfolioItem}
//	@Failure	400	{object}	serializer.Response
//	@Router		/admin/portfolio [post]
func (h *ContentHandler) CreatePortfolioItem(c *gin.Context) {
	req := CreatePortfolioItemReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	item, err := h.svc.CreatePortfolioItem(c.Request.Context(), service.CreatePortfolioItemInput{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		ProjectURL:   req.ProjectURL,
		Technologies: req.Technologies,
		Featured:     req.Featured,
		Status:       req.Status,
		Order:        req.Order,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: item})
}

type UpdatePortfolioItemReq struct {
	Title        *string   `json:"title"`
	Slug         *string   `json:"slug"`
	Description  *string   `json:"description"`
	Category     *string   `json:"category"`
	ImageURL     *string   `json:"image_url"`
	ProjectURL   *string   `json:"project_url"`
	Technologies *[]string `json:"technologies"`
	Featured     *bool     `json:"featured"`
	Status       *string   `json:"status" binding:"omitempty,oneof=active featured archived"`
	Order        *int      `json:"order"`
}

// UpdatePortfolioItem godoc
//
//	@Summary	Update a portfolio item
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		item_id	path	integer					true	"Item ID"
//	@Param		body	body	UpdatePortfolioItemReq	true	"Fields to change"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.PortfolioItem}
//	@Failure	404	{object}	serializer.Response
//	@Router		/admin/portfolio/{item_id} [patch]
func (h *ContentHandler) UpdatePortfolioItem(c *gin.Context) {
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}
	req := UpdatePortfolioItemReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	item, err := h.svc.UpdatePortfolioItem(c.Request.Context(), itemID, service.UpdatePortfolioItemInput{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		ProjectURL:   req.ProjectURL,
		Technologies: req.Technologies,
		Featured:     req.Featured,
		Status:       req.Status,
		Order:        req.Order,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: item})
}

// DeletePortfolioItem godoc
//
//	@Summary	Delete a portfolio item
//	@Tags		admin
//	@Produce	json
//	@Param		item_id	path	integer	true	"Item ID"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response
//	@Failure	404	{object}	serializer.Response
//	@Router		/admin/portfolio/{item_id} [delete]
func (h *ContentHandler) DeletePortfolioItem(c *gin.Context) {
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}
	if err := h.svc.DeletePortfolioItem(c.Request.Context(), itemID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}

// ListPortfolioItems godoc
//
//	@Summary	List all portfolio items
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.PortfolioItem}
//	@Router		/admin/portfolio [get]
func (h *ContentHandler) ListPortfolioItems(c *gin.Context) {
	items, err := h.svc.ListPortfolioItems(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

// ListFeaturedPortfolio godoc
//
//	@Summary	List featured portfolio items
//	@Tags		public
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.PortfolioItem}
//	@Router		/portfolio [get]
func (h *ContentHandler) ListFeaturedPortfolio(c *gin.Context) {
	items, err := h.svc.ListFeaturedPortfolio(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

// GetPortfolioItem godoc
//
//	@Summary		Get a portfolio item by slug
//	@Description	Archived slugs read as 404.
//	@Tags			public
//	@Produce		json
//	@Param			slug	path	string	true	"Portfolio item slug"
//	@Success		200	{object}	serializer.Response{data=model.PortfolioItem}
//	@Failure		404	{object}	serializer.Response
//	@Router			/portfolio/{slug} [get]
func (h *ContentHandler) GetPortfolioItem(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("missing slug", nil))
		return
	}

	item, err := h.svc.GetPublicPortfolioItem(c.Request.Context(), slug)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: item})
}
