package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge-studio/studio-api/internal/middleware"
	"github.com/pixelforge-studio/studio-api/internal/modules/serializer"
	"github.com/pixelforge-studio/studio-api/internal/modules/service"
)

type PortalHandler struct {
	svc service.PortalService
}

func NewPortalHandler(s service.PortalService) *PortalHandler {
	return &PortalHandler{svc: s}
}

type LoginReq struct {
	AccessCode string `json:"access_code" binding:"required" example:"K7MWPX3R"`
}

type LoginResp struct {
	Token  string      `json:"token"`
	Client interface{} `json:"client"`
}

// Login godoc
//
//	@Summary		Log in with an access code
//	@Description	Exchanges a client access code for a session token. Codes match exactly; there is no partial or case-insensitive match.
//	@Tags			portal
//	@Accept			json
//	@Produce		json
//	@Param			body	body	LoginReq	true	"Access code"
//	@Success		200	{object}	serializer.Response{data=LoginResp}
//	@Failure		400	{object}	serializer.Response
//	@Failure		401	{object}	serializer.Response
//	@Router			/portal/login [post]
func (h *PortalHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	client, token, err := h.svc.Login(c.Request.Context(), req.AccessCode)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: LoginResp{Token: token, Client: client}})
}

// ListProjects godoc
//
//	@Summary	List the authenticated client's projects
//	@Tags		portal
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.ClientProject}
//	@Router		/portal/projects [get]
func (h *PortalHandler) ListProjects(c *gin.Context) {
	clientID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	projects, err := h.svc.ListProjects(c.Request.Context(), clientID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

// GetProject godoc
//
//	@Summary		Get one of the authenticated client's projects
//	@Description	Projects belonging to other clients read as 404.
//	@Tags			portal
//	@Produce		json
//	@Param			project_id	path	integer	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.ClientProject}
//	@Failure		404	{object}	serializer.Response
//	@Router			/portal/projects/{project_id} [get]
func (h *PortalHandler) GetProject(c *gin.Context) {
	clientID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}
	projectID, err := strconv.ParseInt(c.Param("project_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid project_id", err))
		return
	}

	project, err := h.svc.GetProject(c.Request.Context(), projectID, clientID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

// ListMilestones godoc
//
//	@Summary	List milestones of one of the client's projects
//	@Tags		portal
//	@Produce	json
//	@Param		project_id	path	integer	true	"Project ID"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.ProjectMilestone}
//	@Failure	404	{object}	serializer.Response
//	@Router		/portal/projects/{project_id}/milestones [get]
func (h *PortalHandler) ListMilestones(c *gin.Context) {
	clientID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}
	projectID, err := strconv.ParseInt(c.Param("project_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid project_id", err))
		return
	}

	milestones, err := h.svc.ListMilestones(c.Request.Context(), projectID, clientID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: milestones})
}

// ListUpdates godoc
//
//	@Summary		List client-visible updates of one of the client's projects
//	@Description	Internal notes never appear here.
//	@Tags			portal
//	@Produce		json
//	@Param			project_id	path	integer	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.ProjectUpdate}
//	@Failure		404	{object}	serializer.Response
//	@Router			/portal/projects/{project_id}/updates [get]
func (h *PortalHandler) ListUpdates(c *gin.Context) {
	clientID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}
	projectID, err := strconv.ParseInt(c.Param("project_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid project_id", err))
		return
	}

	updates, err := h.svc.ListVisibleUpdates(c.Request.Context(), projectID, clientID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: updates})
}
