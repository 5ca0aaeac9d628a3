package service

import (
	"context"
	"strings"

	"go-job-tracker/internal/domain"
)

type NewDocument struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type"`
	Description *string `json:"description"`
	Content     string  `json:"content" binding:"required"`
}

type DocumentService struct {
	repo domain.DocumentRepository
}

func NewDocumentService(st domain.Store) *DocumentService {
	return &DocumentService{repo: st.Documents()}
}

func docOwner(d *domain.Document) uint { return d.UserID }

func (s *DocumentService) List(ctx context.Context, userID uint) ([]domain.Document, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *DocumentService) Create(ctx context.Context, userID uint, in NewDocument) (*domain.Document, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "name is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, domain.Invalid("content", "content is required")
	}
	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		typ = domain.DocumentOther
	}
	d := &domain.Document{
		UserID:      userID,
		Name:        name,
		Type:        typ,
		Description: in.Description,
		Content:     in.Content,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	entitiesCreated.WithLabelValues("document").Inc()
	return d, nil
}

func (s *DocumentService) Get(ctx context.Context, userID, id uint) (*domain.Document, error) {
	return loadOwned(ctx, s.repo.FindByID, docOwner, userID, id)
}

func (s *DocumentService) Update(ctx context.Context, userID, id uint, p domain.DocumentPatch) (*domain.Document, error) {
	if _, err := loadOwned(ctx, s.repo.FindByID, docOwner, userID, id); err != nil {
		return nil, err
	}
	switch {
	case domain.Blank(p.Name):
		return nil, domain.Invalid("name", "name cannot be empty")
	case domain.Blank(p.Content):
		return nil, domain.Invalid("content", "content cannot be empty")
	case domain.Blank(p.Type):
		return nil, domain.Invalid("type", "type cannot be empty")
	}
	trim(&p.Name)
	trim(&p.Type)
	return s.repo.Update(ctx, id, p)
}

func (s *DocumentService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := loadOwned(ctx, s.repo.FindByID, docOwner, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
