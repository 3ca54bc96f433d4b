package main

import (
	"context"
	"testing"
	"time"

	"github.com/proxiglass/planning/internal/config"
	"github.com/proxiglass/planning/internal/persistence"
)

type stubResourceRepo struct {
	records []persistence.Resource
	listErr error
}

func (s *stubResourceRepo) CreateResource(_ context.Context, resource persistence.Resource) error {
	for _, existing := range s.records {
		if existing.ID == resource.ID {
			return persistence.ErrDuplicate
		}
	}
	s.records = append(s.records, resource)
	return nil
}

func (s *stubResourceRepo) UpdateResource(_ context.Context, resource persistence.Resource) error {
	return persistence.ErrNotFound
}

func (s *stubResourceRepo) GetResource(_ context.Context, id string) (persistence.Resource, error) {
	return persistence.Resource{}, persistence.ErrNotFound
}

func (s *stubResourceRepo) ListResources(_ context.Context) ([]persistence.Resource, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.records, nil
}

func (s *stubResourceRepo) DeleteResource(_ context.Context, id string) error {
	return persistence.ErrNotFound
}

func TestSeedResourcesPopulatesEmptyCatalog(t *testing.T) {
	t.Parallel()

	repo := &stubResourceRepo{}
	cfg := config.Default()
	now := func() time.Time { return time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC) }

	if err := seedResources(context.Background(), repo, cfg, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.records) != 2 {
		t.Fatalf("seeded %d resources, want 2", len(repo.records))
	}
	if repo.records[0].ID != "t1" || repo.records[1].ID != "t2" {
		t.Fatalf("records = %+v", repo.records)
	}
	if repo.records[0].CreatedAt.IsZero() {
		t.Fatal("timestamps must be set")
	}
}

func TestSeedResourcesSkipsNonEmptyCatalog(t *testing.T) {
	t.Parallel()

	repo := &stubResourceRepo{records: []persistence.Resource{{ID: "custom", Name: "Fourgon"}}}

	if err := seedResources(context.Background(), repo, config.Default(), time.Now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("existing catalog must be left alone, got %d records", len(repo.records))
	}
}

func TestSeedResourcesGeneratesMissingIDs(t *testing.T) {
	t.Parallel()

	repo := &stubResourceRepo{}
	cfg := config.Default()
	cfg.Resources = []config.ResourceConfig{{Name: "Sans identifiant"}}

	if err := seedResources(context.Background(), repo, cfg, time.Now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.records) != 1 || repo.records[0].ID == "" {
		t.Fatalf("records = %+v", repo.records)
	}
}

func TestCalendarIdentity(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	identity := calendarIdentity(cfg)
	if identity.Product != "ProxiGlass" || identity.Locale != "FR" {
		t.Fatalf("identity = %+v", identity)
	}

	cfg.Export.Product = "GlassCo"
	cfg.Export.Locale = ""
	identity = calendarIdentity(cfg)
	if identity.Product != "GlassCo" || identity.Locale != "FR" {
		t.Fatalf("empty locale must keep the default, got %+v", identity)
	}
}
