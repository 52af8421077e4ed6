package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pixelforge-studio/studio-api/internal/config"
	"github.com/pixelforge-studio/studio-api/internal/infra/blob"
	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"github.com/pixelforge-studio/studio-api/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PortalService is the client-facing read surface. Every project-scoped read
// goes through the compound (projectID, clientID) ownership filter; child
// collections are only reachable through a validated project, never by bare
// id.
type PortalService interface {
	// Login resolves an access code to its client and issues a session token.
	// Any non-matching input (empty, prefix, suffix, case variant) fails with
	// ErrInvalidAccessCode.
	Login(ctx context.Context, accessCode string) (*model.Client, string, error)
	ListProjects(ctx context.Context, clientID int64) ([]model.ClientProject, error)
	GetProject(ctx context.Context, projectID, clientID int64) (*model.ClientProject, error)
	ListMilestones(ctx context.Context, projectID, clientID int64) ([]model.ProjectMilestone, error)
	ListVisibleUpdates(ctx context.Context, projectID, clientID int64) ([]model.ProjectUpdate, error)
}

type portalService struct {
	clients    repo.ClientRepo
	projects   repo.ClientProjectRepo
	milestones repo.ProjectMilestoneRepo
	updates    repo.ProjectUpdateRepo
	blob       *blob.S3Deps
	cfg        *config.Config
	log        *zap.Logger
}

func NewPortalService(
	clients repo.ClientRepo,
	projects repo.ClientProjectRepo,
	milestones repo.ProjectMilestoneRepo,
	updates repo.ProjectUpdateRepo,
	blobDeps *blob.S3Deps,
	cfg *config.Config,
	log *zap.Logger,
) PortalService {
	return &portalService{
		clients:    clients,
		projects:   projects,
		milestones: milestones,
		updates:    updates,
		blob:       blobDeps,
		cfg:        cfg,
		log:        log,
	}
}

func (s *portalService) Login(ctx context.Context, accessCode string) (*model.Client, string, error) {
	if accessCode == "" {
		return nil, "", ErrInvalidAccessCode
	}

	client, err := s.clients.GetByAccessCode(ctx, accessCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidAccessCode
		}
		return nil, "", err
	}

	token, err := s.issueSessionToken(client.ID)
	if err != nil {
		return nil, "", err
	}
	return client, token, nil
}

func (s *portalService) issueSessionToken(clientID int64) (string, error) {
	ttl := time.Duration(s.cfg.Portal.SessionTTLMin) * time.Minute
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(clientID, 10),
		Issuer:    s.cfg.App.Name,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.Portal.JWTSecret))
}

func (s *portalService) ListProjects(ctx context.Context, clientID int64) ([]model.ClientProject, error) {
	projects, err := s.projects.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].Derive()
	}
	return projects, nil
}

func (s *portalService) GetProject(ctx context.Context, projectID, clientID int64) (*model.ClientProject, error) {
	p, err := s.projects.GetOwned(ctx, projectID, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Derive()
	return p, nil
}

func (s *portalService) ListMilestones(ctx context.Context, projectID, clientID int64) ([]model.ProjectMilestone, error) {
	// Resolve through the owning aggregate before touching children.
	project, err := s.GetProject(ctx, projectID, clientID)
	if err != nil {
		return nil, err
	}
	return s.milestones.ListByProject(ctx, project.ID)
}

func (s *portalService) ListVisibleUpdates(ctx context.Context, projectID, clientID int64) ([]model.ProjectUpdate, error) {
	project, err := s.GetProject(ctx, projectID, clientID)
	if err != nil {
		return nil, err
	}

	updates, err := s.updates.ListByProject(ctx, project.ID, true)
	if err != nil {
		return nil, err
	}

	for i := range updates {
		updates[i].AttachmentURL = s.resolveAttachmentURL(ctx, updates[i].AttachmentURL)
	}
	return updates, nil
}

// resolveAttachmentURL swaps stored s3:// locations for presigned GET URLs.
// Plain http(s) URLs pass through untouched.
func (s *portalService) resolveAttachmentURL(ctx context.Context, stored string) string {
	if s.blob == nil || !strings.HasPrefix(stored, "s3://") {
		return stored
	}
	key := strings.TrimPrefix(stored, "s3://"+s.blob.Bucket+"/")
	expire := time.Duration(s.cfg.S3.PresignExpireSec) * time.Second
	url, err := s.blob.PresignGet(ctx, key, expire)
	if err != nil {
		s.log.Warn("presign attachment failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}
