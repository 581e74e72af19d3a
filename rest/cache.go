package rest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"teamboard/domain"
)

// Cache wraps a Client with Redis-backed snapshots for the hot list reads so
// a restarted consumer can show a board before the first fetch completes.
// Only the unscoped task list is cached; project-scoped fetches always hit
// the backend. Redis failures degrade silently to the backend.
type Cache struct {
	*Client
	redis  *redis.Client
	ttl    time.Duration
	userID string
}

// NewCache creates a caching wrapper keyed to the given user.
func NewCache(base *Client, client *redis.Client, ttl time.Duration, userID string) *Cache {
	if base == nil {
		panic("rest.NewCache: base client is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{Client: base, redis: client, ttl: ttl, userID: userID}
}

func (c *Cache) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	if projectID != "" {
		return c.Client.ListTasks(ctx, projectID)
	}
	if tasks, ok := c.loadTasks(ctx); ok {
		return tasks, nil
	}
	tasks, err := c.Client.ListTasks(ctx, "")
	if err != nil {
		return nil, err
	}
	c.store(ctx, c.tasksKey(), tasks)
	return tasks, nil
}

func (c *Cache) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if projects, ok := c.loadProjects(ctx); ok {
		return projects, nil
	}
	projects, err := c.Client.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, c.projectsKey(), projects)
	return projects, nil
}

func (c *Cache) CreateTask(ctx context.Context, n domain.NewTask) (domain.Task, error) {
	task, err := c.Client.CreateTask(ctx, n)
	if err != nil {
		return domain.Task{}, err
	}
	c.evict(ctx, c.tasksKey())
	return task, nil
}

func (c *Cache) UpdateTask(ctx context.Context, id string, upd domain.TaskUpdate) (domain.Task, error) {
	task, err := c.Client.UpdateTask(ctx, id, upd)
	if err != nil {
		return domain.Task{}, err
	}
	c.evict(ctx, c.tasksKey())
	return task, nil
}

func (c *Cache) DeleteTask(ctx context.Context, id string) error {
	if err := c.Client.DeleteTask(ctx, id); err != nil {
		return err
	}
	c.evict(ctx, c.tasksKey())
	return nil
}

func (c *Cache) CreateProject(ctx context.Context, n domain.NewProject) (domain.Project, error) {
	project, err := c.Client.CreateProject(ctx, n)
	if err != nil {
		return domain.Project{}, err
	}
	c.evict(ctx, c.projectsKey())
	return project, nil
}

func (c *Cache) UpdateProject(ctx context.Context, id string, upd domain.ProjectUpdate) (domain.Project, error) {
	project, err := c.Client.UpdateProject(ctx, id, upd)
	if err != nil {
		return domain.Project{}, err
	}
	c.evict(ctx, c.projectsKey())
	return project, nil
}

func (c *Cache) DeleteProject(ctx context.Context, id string) error {
	if err := c.Client.DeleteProject(ctx, id); err != nil {
		return err
	}
	c.evict(ctx, c.projectsKey(), c.tasksKey())
	return nil
}

func (c *Cache) loadTasks(ctx context.Context) ([]domain.Task, bool) {
	data, ok := c.load(ctx, c.tasksKey())
	if !ok {
		return nil, false
	}
	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		c.evict(ctx, c.tasksKey())
		return nil, false
	}
	return tasks, true
}

func (c *Cache) loadProjects(ctx context.Context) ([]domain.Project, bool) {
	data, ok := c.load(ctx, c.projectsKey())
	if !ok {
		return nil, false
	}
	var projects []domain.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		c.evict(ctx, c.projectsKey())
		return nil, false
	}
	return projects, true
}

func (c *Cache) load(ctx context.Context, key string) ([]byte, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			_ = c.redis.Del(ctx, key).Err()
		}
		return nil, false
	}
	return data, true
}

func (c *Cache) store(ctx context.Context, key string, value any) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

func (c *Cache) evict(ctx context.Context, keys ...string) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(ctx, keys...).Result()
}

func (c *Cache) tasksKey() string {
	return "tasks:" + c.userID
}

func (c *Cache) projectsKey() string {
	return "projects:" + c.userID
}
