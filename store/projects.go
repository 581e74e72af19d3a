package store

import (
	"context"
	"fmt"
	"sync"

	"teamboard/domain"
)

type ProjectsBackend interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProject(ctx context.Context, id string) (domain.Project, error)
	CreateProject(ctx context.Context, n domain.NewProject) (domain.Project, error)
	UpdateProject(ctx context.Context, id string, upd domain.ProjectUpdate) (domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// Projects mirrors the team's project list plus a current-project selection.
type Projects struct {
	api ProjectsBackend

	mu       sync.Mutex
	projects []domain.Project
	current  *domain.Project
	loading  bool
	lastErr  string

	signal signal
}

func NewProjects(api ProjectsBackend) *Projects {
	return &Projects{api: api}
}

func (s *Projects) Watch() (<-chan struct{}, func()) { return s.signal.watch() }

func (s *Projects) Snapshot() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Current returns the selected project, nil when none is selected.
func (s *Projects) Current() *domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	p := *s.current
	return &p
}

func (s *Projects) SetCurrent(p *domain.Project) {
	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	s.signal.notify()
}

func (s *Projects) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Projects) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Projects) ClearErr() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
	s.signal.notify()
}

func (s *Projects) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
	s.signal.notify()
}

func (s *Projects) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.signal.notify()
}

func (s *Projects) Fetch(ctx context.Context) error {
	s.begin()
	projects, err := s.api.ListProjects(ctx)
	if err != nil {
		s.fail(err)
		return fmt.Errorf("fetch projects: %w", err)
	}
	s.mu.Lock()
	s.projects = projects
	s.loading = false
	s.mu.Unlock()
	s.signal.notify()
	return nil
}

// FetchOne loads a single project and selects it.
func (s *Projects) FetchOne(ctx context.Context, id string) error {
	s.begin()
	project, err := s.api.GetProject(ctx, id)
	if err != nil {
		s.fail(err)
		return fmt.Errorf("fetch project %s: %w", id, err)
	}
	s.mu.Lock()
	s.current = &project
	s.loading = false
	s.mu.Unlock()
	s.signal.notify()
	return nil
}

func (s *Projects) Create(ctx context.Context, n domain.NewProject) (domain.Project, error) {
	s.begin()
	project, err := s.api.CreateProject(ctx, n)
	if err != nil {
		s.fail(err)
		return domain.Project{}, fmt.Errorf("create project: %w", err)
	}
	s.mu.Lock()
	s.projects = append([]domain.Project{project}, s.projects...)
	s.loading = false
	s.mu.Unlock()
	s.signal.notify()
	return project, nil
}

func (s *Projects) Update(ctx context.Context, id string, upd domain.ProjectUpdate) (domain.Project, error) {
	s.begin()
	project, err := s.api.UpdateProject(ctx, id, upd)
	if err != nil {
		s.fail(err)
		return domain.Project{}, fmt.Errorf("update project %s: %w", id, err)
	}
	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i] = project
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = &project
	}
	s.loading = false
	s.mu.Unlock()
	s.signal.notify()
	return project, nil
}

func (s *Projects) Delete(ctx context.Context, id string) error {
	s.begin()
	if err := s.api.DeleteProject(ctx, id); err != nil {
		s.fail(err)
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	s.mu.Lock()
	out := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			out = append(out, p)
		}
	}
	s.projects = out
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.loading = false
	s.mu.Unlock()
	s.signal.notify()
	return nil
}
