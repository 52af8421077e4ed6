package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge-studio/studio-api/internal/modules/serializer"
	"github.com/pixelforge-studio/studio-api/internal/modules/service"
	"gorm.io/datatypes"
)

// maxAttachmentBytes bounds update attachment uploads.
const maxAttachmentBytes = 25 << 20

type TrackerHandler struct {
	svc service.TrackerService
}

func NewTrackerHandler(s service.TrackerService) *TrackerHandler {
	return &TrackerHandler{svc: s}
}

// parseDate accepts "2006-01-02"; empty means unset.
func parseDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid "+name, err))
		return 0, false
	}
	return id, true
}

type CreateClientReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	// AccessCode is optional; one is generated when omitted.
	AccessCode string `json:"access_code" binding:"omitempty,accesscode"`
}

// CreateClient godoc
//
//	@Summary		Create a client
//	@Description	Registers a client with a login access code; omit the code to have one generated. The response is the only place the code is returned.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			body	body	CreateClientReq	true	"Client"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=CreateClientResp}
//	@Failure		400	{object}	serializer.Response
//	@Router			/admin/clients [post]
func (h *TrackerHandler) CreateClient(c *gin.Context) {
	req := CreateClientReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	client, err := h.svc.CreateClient(c.Request.Context(), service.CreateClientInput{
		Name:       req.Name,
		Email:      req.Email,
		Company:    req.Company,
		Phone:      req.Phone,
		AccessCode: req.AccessCode,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: CreateClientResp{
		Client:     client,
		AccessCode: client.AccessCode,
	}})
}

// CreateClientResp carries the access code alongside the created client; the
// client model itself never serializes the code.
type CreateClientResp struct {
	Client     interface{} `json:"client"`
	AccessCode string      `json:"access_code"`
}

// ListClients godoc
//
//	@Summary	List clients
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.Client}
//	@Router		/admin/clients [get]
func (h *TrackerHandler) ListClients(c *gin.Context) {
	clients, err := h.svc.ListClients(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: clients})
}

type CreateProjectReq struct {
	ClientID    int64  `json:"client_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=pending in-progress review completed on-hold"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Package     string `json:"package"`
	TotalCost   int64  `json:"total_cost" binding:"min=0"`
	PaidAmount  int64  `json:"paid_amount" binding:"min=0"`
	StartDate   string `json:"start_date"`
	DueDate     string `json:"due_date"`
}

// CreateProject godoc
//
//	@Summary	Create a project for a client
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		body	body	CreateProjectReq	true	"Project"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.ClientProject}
//	@Failure	400	{object}	serializer.Response
//	@Failure	404	{object}	serializer.Response
//	@Router		/admin/projects [post]
func (h *TrackerHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid start_date, expect YYYY-MM-DD", err))
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid due_date, expect YYYY-MM-DD", err))
		return
	}

	project, err := h.svc.CreateProject(c.Request.Context(), service.CreateProjectInput{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Package:     req.Package,
		TotalCost:   req.TotalCost,
		PaidAmount:  req.PaidAmount,
		StartDate:   start,
		DueDate:     due,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

type UpdateProjectReq struct {
	Revision      int64   `json:"revision" binding:"required,min=1"`
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Status        *string `json:"status" binding:"omitempty,oneof=pending in-progress review completed on-hold"`
	Priority      *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Package       *string `json:"package"`
	TotalCost     *int64  `json:"total_cost" binding:"omitempty,min=0"`
	PaidAmount    *int64  `json:"paid_amount" binding:"omitempty,min=0"`
	StartDate     *string `json:"start_date"`
	DueDate       *string `json:"due_date"`
	CompletedDate *string `json:"completed_date"`
}

// UpdateProject godoc
//
//	@Summary		Update a project
//	@Description	Partial update guarded by the project's revision; a stale revision is rejected with 409.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	integer				true	"Project ID"
//	@Param			body		body	UpdateProjectReq	true	"Fields to change plus the revision read"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.ClientProject}
//	@Failure		400	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Failure		409	{object}	serializer.Response
//	@Router			/admin/projects/{project_id} [patch]
func (h *TrackerHandler) UpdateProject(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	req := UpdateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Package:     req.Package,
		TotalCost:   req.TotalCost,
		PaidAmount:  req.PaidAmount,
	}
	var err error
	if req.StartDate != nil {
		if in.StartDate, err = parseDate(*req.StartDate); err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid start_date, expect YYYY-MM-DD", err))
			return
		}
	}
	if req.DueDate != nil {
		if in.DueDate, err = parseDate(*req.DueDate); err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid due_date, expect YYYY-MM-DD", err))
			return
		}
	}
	if req.CompletedDate != nil {
		if in.CompletedDate, err = parseDate(*req.CompletedDate); err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid completed_date, expect YYYY-MM-DD", err))
			return
		}
	}

	project, err := h.svc.UpdateProject(c.Request.Context(), projectID, req.Revision, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

// ListProjects godoc
//
//	@Summary	List all projects across clients
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.ClientProject}
//	@Router		/admin/projects [get]
func (h *TrackerHandler) ListProjects(c *gin.Context) {
	projects, err := h.svc.ListAllProjects(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

type CreateMilestoneReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	Order       int    `json:"order"`
	DueDate     string `json:"due_date"`
}

// CreateMilestone godoc
//
//	@Summary	Create a milestone on a project
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		project_id	path	integer				true	"Project ID"
//	@Param		body		body	CreateMilestoneReq	true	"Milestone"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.ProjectMilestone}
//	@Failure	404	{object}	serializer.Response
//	@Router		/admin/projects/{project_id}/milestones [post]
func (h *TrackerHandler) CreateMilestone(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	req := CreateMilestoneReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid due_date, expect YYYY-MM-DD", err))
		return
	}

	milestone, err := h.svc.CreateMilestone(c.Request.Context(), service.CreateMilestoneInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Order:       req.Order,
		DueDate:     due,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: milestone})
}

type UpdateMilestoneReq struct {
	Revision      int64   `json:"revision" binding:"required,min=1"`
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Status        *string `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	Order         *int    `json:"order"`
	DueDate       *string `json:"due_date"`
	CompletedDate *string `json:"completed_date"`
}

// UpdateMilestone godoc
//
//	@Summary	Update a milestone
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		milestone_id	path	integer				true	"Milestone ID"
//	@Param		body			body	UpdateMilestoneReq	true	"Fields to change plus the revision read"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.ProjectMilestone}
//	@Failure	404	{object}	serializer.Response
//	@Failure	409	{object}	serializer.Response
//	@Router		/admin/milestones/{milestone_id} [patch]
func (h *TrackerHandler) UpdateMilestone(c *gin.Context) {
	milestoneID, ok := pathID(c, "milestone_id")
	if !ok {
		return
	}
	req := UpdateMilestoneReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.UpdateMilestoneInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Order:       req.Order,
	}
	var err error
	if req.DueDate != nil {
		if in.DueDate, err = parseDate(*req.DueDate); err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid due_date, expect YYYY-MM-DD", err))
			return
		}
	}
	if req.CompletedDate != nil {
		if in.CompletedDate, err = parseDate(*req.CompletedDate); err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid completed_date, expect YYYY-MM-DD", err))
			return
		}
	}

	milestone, err := h.svc.UpdateMilestone(c.Request.Context(), milestoneID, req.Revision, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: milestone})
}

// ListMilestones godoc
//
//	@Summary	List milestones of a project
//	@Tags		admin
//	@Produce	json
//	@Param		project_id	path	integer	true	"Project ID"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.ProjectMilestone}
//	@Router		/admin/projects/{project_id}/milestones [get]
func (h *TrackerHandler) ListMilestones(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	milestones, err := h.svc.ListMilestones(c.Request.Context(), projectID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: milestones})
}

type CreateUpdateReq struct {
	Title           string `json:"title" binding:"required"`
	Message         string `json:"message" binding:"required"`
	Type            string `json:"type" binding:"omitempty,oneof=update milestone question delivery"`
	IsClientVisible *bool  `json:"is_client_visible"`
	AttachmentURL   string `json:"attachment_url"`
}

// CreateUpdate godoc
//
//	@Summary	Post an update on a project
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		project_id	path	integer			true	"Project ID"
//	@Param		body		body	CreateUpdateReq	true	"Update"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.ProjectUpdate}
//	@Failure	404	{object}	serializer.Response
//	@Router		/admin/projects/{project_id}/updates [post]
func (h *TrackerHandler) CreateUpdate(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	req := CreateUpdateReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	update, err := h.svc.CreateUpdate(c.Request.Context(), service.CreateUpdateInput{
		ProjectID:       projectID,
		Title:           req.Title,
		Message:         req.Message,
		Type:            req.Type,
		IsClientVisible: req.IsClientVisible,
		AttachmentURL:   req.AttachmentURL,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: update})
}

// ListUpdates godoc
//
//	@Summary	List all updates of a project, hidden ones included
//	@Tags		admin
//	@Produce	json
//	@Param		project_id	path	integer	true	"Project ID"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.ProjectUpdate}
//	@Router		/admin/projects/{project_id}/updates [get]
func (h *TrackerHandler) ListUpdates(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	updates, err := h.svc.ListUpdates(c.Request.Context(), projectID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: updates})
}

// AttachFile godoc
//
//	@Summary		Attach a file to an update
//	@Description	Multipart upload; the stored object is served to clients through a presigned URL.
//	@Tags			admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			update_id	path		integer	true	"Update ID"
//	@Param			file		formData	file	true	"Attachment"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.ProjectUpdate}
//	@Failure		400	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/admin/updates/{update_id}/attachment [post]
func (h *TrackerHandler) AttachFile(c *gin.Context) {
	updateID, ok := pathID(c, "update_id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("missing file", err))
		return
	}
	if fileHeader.Size > maxAttachmentBytes {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("file too large", nil))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("unreadable file", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxAttachmentBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("unreadable file", err))
		return
	}
	if len(data) > maxAttachmentBytes {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("file too large", nil))
		return
	}

	update, err := h.svc.AttachFile(c.Request.Context(), updateID, fileHeader.Filename, data)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: update})
}
