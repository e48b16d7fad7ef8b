package service

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/portfolio-api/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio-api/internal/storage/mongodb"
	"github.com/sirupsen/logrus"
)

const (
	// Collection holds every project document.
	Collection = "project"

	DefaultListLimit int64 = 50
)

// DocumentStore is the subset of the data access layer the service needs.
type DocumentStore interface {
	Insert(ctx context.Context, collection string, doc mongodb.Document) (string, error)
	Find(ctx context.Context, collection string, filter mongodb.Filter, limit int64) ([]mongodb.Document, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	store DocumentStore
	log   logrus.FieldLogger
}

// NewProjectService creates a new project service
func NewProjectService(store DocumentStore, log logrus.FieldLogger) *ProjectService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ProjectService{store: store, log: log}
}

// Create validates in and stores it, returning the assigned id. Nothing is
// written when validation fails.
func (s *ProjectService) Create(ctx context.Context, in domain.ProjectInput) (string, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return "", err
	}

	id, err := s.store.Insert(ctx, Collection, in.Document())
	if err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}
	return id, nil
}

// ListQuery selects projects. Empty Tag and nil Featured impose no constraint.
type ListQuery struct {
	Tag      string
	Featured *bool
	Limit    int64
}

// Filter builds the store filter for q. Conditions are combined with AND.
func (q ListQuery) Filter() mongodb.Filter {
	f := mongodb.Filter{}
	if q.Tag != "" {
		f["tags"] = mongodb.OneOf{q.Tag}
	}
	if q.Featured != nil {
		f["featured"] = *q.Featured
	}
	return f
}

// List returns matching projects in the store's natural order. No match
// yields an empty slice.
func (s *ProjectService) List(ctx context.Context, q ListQuery) ([]domain.Project, error) {
	if q.Limit < 0 {
		return nil, &domain.ValidationError{Field: "limit", Message: "must not be negative"}
	}

	docs, err := s.store.Find(ctx, Collection, q.Filter(), q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out := make([]domain.Project, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.FromDocument(d))
	}
	return out, nil
}
