package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/proxiglass/planning/internal/persistence"
)

type stubResourceStore struct {
	records []persistence.Resource
	listErr error
}

func (s *stubResourceStore) CreateResource(_ context.Context, resource persistence.Resource) error {
	for _, existing := range s.records {
		if existing.ID == resource.ID {
			return persistence.ErrDuplicate
		}
	}
	s.records = append(s.records, resource)
	return nil
}

func (s *stubResourceStore) UpdateResource(_ context.Context, resource persistence.Resource) error {
	for i, existing := range s.records {
		if existing.ID == resource.ID {
			s.records[i] = resource
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (s *stubResourceStore) GetResource(_ context.Context, id string) (persistence.Resource, error) {
	for _, existing := range s.records {
		if existing.ID == id {
			return existing, nil
		}
	}
	return persistence.Resource{}, persistence.ErrNotFound
}

func (s *stubResourceStore) ListResources(_ context.Context) ([]persistence.Resource, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]persistence.Resource(nil), s.records...), nil
}

func (s *stubResourceStore) DeleteResource(_ context.Context, id string) error {
	for i, existing := range s.records {
		if existing.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

var resourceTestTime = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

func newTestResourceService(store ResourceStore) *ResourceService {
	counter := 0
	idGen := func() string {
		counter++
		return fmt.Sprintf("vehicle-%d", counter)
	}
	return NewResourceService(store, idGen, func() time.Time { return resourceTestTime })
}

func TestResourceCreate(t *testing.T) {
	t.Parallel()

	store := &stubResourceStore{}
	service := newTestResourceService(store)

	resource, err := service.Create(context.Background(), ResourceInput{Name: "  Véhicule 3 (rouge)  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resource.ID != "vehicle-1" {
		t.Errorf("ID = %q", resource.ID)
	}
	if resource.Name != "Véhicule 3 (rouge)" {
		t.Errorf("Name = %q, want trimmed", resource.Name)
	}
	if !resource.CreatedAt.Equal(resourceTestTime) {
		t.Error("CreatedAt must come from the injected clock")
	}
	if len(store.records) != 1 {
		t.Fatal("record was not persisted")
	}
}

func TestResourceCreateRequiresName(t *testing.T) {
	t.Parallel()

	service := newTestResourceService(&stubResourceStore{})

	_, err := service.Create(context.Background(), ResourceInput{Name: "   "})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.FieldErrors["name"] == "" {
		t.Fatalf("missing name error in %v", vErr.FieldErrors)
	}
}

func TestResourceUpdate(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	store := &stubResourceStore{records: []persistence.Resource{
		{ID: "t1", Name: "Véhicule 1", CreatedAt: created, UpdatedAt: created},
	}}
	service := newTestResourceService(store)

	resource, err := service.Update(context.Background(), "t1", ResourceInput{Name: "Véhicule 1 (bleu)"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resource.Name != "Véhicule 1 (bleu)" {
		t.Errorf("Name = %q", resource.Name)
	}
	if !resource.CreatedAt.Equal(created) {
		t.Error("CreatedAt must be preserved")
	}
	if !resource.UpdatedAt.Equal(resourceTestTime) {
		t.Error("UpdatedAt must come from the injected clock")
	}

	if _, err := service.Update(context.Background(), "ghost", ResourceInput{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResourceDelete(t *testing.T) {
	t.Parallel()

	store := &stubResourceStore{records: []persistence.Resource{{ID: "t1", Name: "Véhicule 1"}}}
	service := newTestResourceService(store)

	if err := service.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.records) != 0 {
		t.Fatal("record still present")
	}
	if err := service.Delete(context.Background(), "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResourceListAndIDs(t *testing.T) {
	t.Parallel()

	store := &stubResourceStore{records: []persistence.Resource{
		{ID: "t1", Name: "Véhicule 1 (bleu)"},
		{ID: "t2", Name: "Véhicule 2 (vert)"},
	}}
	service := newTestResourceService(store)

	resources, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resources) != 2 || resources[0].ID != "t1" || resources[1].ID != "t2" {
		t.Fatalf("resources = %v", resources)
	}

	ids, err := service.IDs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "t1" || ids[1] != "t2" {
		t.Fatalf("ids = %v", ids)
	}
}

func TestResourceListEmpty(t *testing.T) {
	t.Parallel()

	service := newTestResourceService(&stubResourceStore{})
	resources, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resources != nil {
		t.Fatalf("empty catalog must yield nil, got %v", resources)
	}
}
