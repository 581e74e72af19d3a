package store

import (
	"context"
	"errors"
	"testing"

	"teamboard/domain"
)

type stubProjectsAPI struct {
	listFn   func(ctx context.Context) ([]domain.Project, error)
	getFn    func(ctx context.Context, id string) (domain.Project, error)
	createFn func(ctx context.Context, n domain.NewProject) (domain.Project, error)
	updateFn func(ctx context.Context, id string, upd domain.ProjectUpdate) (domain.Project, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubProjectsAPI) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if s.listFn == nil {
		return nil, errors.New("unexpected ListProjects call")
	}
	return s.listFn(ctx)
}

func (s *stubProjectsAPI) GetProject(ctx context.Context, id string) (domain.Project, error) {
	if s.getFn == nil {
		return domain.Project{}, errors.New("unexpected GetProject call")
	}
	return s.getFn(ctx, id)
}

func (s *stubProjectsAPI) CreateProject(ctx context.Context, n domain.NewProject) (domain.Project, error) {
	if s.createFn == nil {
		return domain.Project{}, errors.New("unexpected CreateProject call")
	}
	return s.createFn(ctx, n)
}

func (s *stubProjectsAPI) UpdateProject(ctx context.Context, id string, upd domain.ProjectUpdate) (domain.Project, error) {
	if s.updateFn == nil {
		return domain.Project{}, errors.New("unexpected UpdateProject call")
	}
	return s.updateFn(ctx, id, upd)
}

func (s *stubProjectsAPI) DeleteProject(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return errors.New("unexpected DeleteProject call")
	}
	return s.deleteFn(ctx, id)
}

func TestFetchOneSelectsProject(t *testing.T) {
	api := &stubProjectsAPI{
		getFn: func(_ context.Context, id string) (domain.Project, error) {
			return domain.Project{ID: id, Name: "Alpha"}, nil
		},
	}
	s := NewProjects(api)

	if err := s.FetchOne(context.Background(), "p1"); err != nil {
		t.Fatalf("fetch one: %v", err)
	}
	cur := s.Current()
	if cur == nil || cur.ID != "p1" {
		t.Fatalf("unexpected selection: %+v", cur)
	}
}

func TestUpdateRefreshesSelection(t *testing.T) {
	api := &stubProjectsAPI{
		updateFn: func(_ context.Context, id string, upd domain.ProjectUpdate) (domain.Project, error) {
			return domain.Project{ID: id, Name: *upd.Name}, nil
		},
	}
	s := NewProjects(api)
	p := domain.Project{ID: "p1", Name: "Alpha"}
	s.projects = []domain.Project{p}
	s.SetCurrent(&p)

	name := "Beta"
	if _, err := s.Update(context.Background(), "p1", domain.ProjectUpdate{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := s.Snapshot()[0].Name; got != "Beta" {
		t.Fatalf("list not refreshed: %q", got)
	}
	if cur := s.Current(); cur == nil || cur.Name != "Beta" {
		t.Fatalf("selection not refreshed: %+v", cur)
	}
}

func TestDeleteClearsSelection(t *testing.T) {
	api := &stubProjectsAPI{
		deleteFn: func(context.Context, string) error { return nil },
	}
	s := NewProjects(api)
	p := domain.Project{ID: "p1"}
	s.projects = []domain.Project{p, {ID: "p2"}}
	s.SetCurrent(&p)

	if err := s.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := s.Snapshot(); len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("unexpected list: %+v", got)
	}
	if s.Current() != nil {
		t.Fatal("selection not cleared")
	}
}

func TestProjectsFetchFailureKeepsList(t *testing.T) {
	api := &stubProjectsAPI{
		listFn: func(context.Context) ([]domain.Project, error) {
			return nil, errors.New("backend down")
		},
	}
	s := NewProjects(api)
	s.projects = []domain.Project{{ID: "p1"}}

	if err := s.Fetch(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(s.Snapshot()) != 1 {
		t.Fatal("previous list lost")
	}
	if s.Err() == "" {
		t.Fatal("expected error recorded")
	}
}
