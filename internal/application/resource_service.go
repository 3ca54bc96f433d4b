package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/proxiglass/planning/internal/persistence"
)

// ResourceStore captures the persistence operations needed by the service.
type ResourceStore interface {
	CreateResource(ctx context.Context, resource persistence.Resource) error
	UpdateResource(ctx context.Context, resource persistence.Resource) error
	GetResource(ctx context.Context, id string) (persistence.Resource, error)
	ListResources(ctx context.Context) ([]persistence.Resource, error)
	DeleteResource(ctx context.Context, id string) error
}

// ResourceService manages the vehicle/technician catalog.
type ResourceService struct {
	resources   ResourceStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewResourceService constructs a resource service with the provided dependencies.
func NewResourceService(resources ResourceStore, idGenerator func() string, now func() time.Time) *ResourceService {
	return NewResourceServiceWithLogger(resources, idGenerator, now, nil)
}

// NewResourceServiceWithLogger constructs a resource service with a specified logger.
func NewResourceServiceWithLogger(resources ResourceStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ResourceService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ResourceService{resources: resources, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *ResourceService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ResourceService", operation, attrs...)
}

// Create validates input and persists a new vehicle entry.
func (s *ResourceService) Create(ctx context.Context, input ResourceInput) (resource Resource, err error) {
	if s == nil {
		return Resource{}, fmt.Errorf("ResourceService is nil")
	}

	logger := s.loggerWith(ctx, "Create")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create resource", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("resource_id", resource.ID).InfoContext(ctx, "resource created")
	}()

	vErr := validateResourceInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	record := persistence.Resource{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(input.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = mapRepoError(s.resources.CreateResource(ctx, record)); err != nil {
		return
	}
	resource = toResource(record)
	return
}

// Update renames an existing vehicle entry.
func (s *ResourceService) Update(ctx context.Context, id string, input ResourceInput) (resource Resource, err error) {
	if s == nil {
		return Resource{}, fmt.Errorf("ResourceService is nil")
	}

	logger := s.loggerWith(ctx, "Update", "resource_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update resource", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "resource updated")
	}()

	vErr := validateResourceInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	existing, err := s.resources.GetResource(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.UpdatedAt = s.now()

	if err = mapRepoError(s.resources.UpdateResource(ctx, existing)); err != nil {
		return
	}
	resource = toResource(existing)
	return
}

// Delete removes a vehicle entry. Appointments keep their resource id and
// surface in the unassigned column once the id is unknown.
func (s *ResourceService) Delete(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("ResourceService is nil")
	}

	logger := s.loggerWith(ctx, "Delete", "resource_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete resource", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "resource deleted")
	}()

	return mapRepoError(s.resources.DeleteResource(ctx, id))
}

// List returns the catalog in stored order.
func (s *ResourceService) List(ctx context.Context) ([]Resource, error) {
	if s == nil {
		return nil, fmt.Errorf("ResourceService is nil")
	}
	records, err := s.resources.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	resources := make([]Resource, 0, len(records))
	for _, record := range records {
		resources = append(resources, toResource(record))
	}
	return resources, nil
}

// IDs returns the catalog identifiers, in stored order.
func (s *ResourceService) IDs(ctx context.Context) ([]string, error) {
	resources, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(resources))
	for _, resource := range resources {
		ids = append(ids, resource.ID)
	}
	return ids, nil
}

func validateResourceInput(input ResourceInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	return vErr
}

func toResource(record persistence.Resource) Resource {
	return Resource{
		ID:        record.ID,
		Name:      record.Name,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
