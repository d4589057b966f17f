package recipe

import (
	"Go-Recipe-Admin/domain"
	"context"
	"sync"
)

type updateCall struct {
	id    string
	draft domain.RecipeDraft
}

type fakeRecipeGateway struct {
	mu          sync.Mutex
	createCalls []domain.RecipeDraft
	readCalls   []string
	updateCalls []updateCall

	createFn func(ctx context.Context, draft domain.RecipeDraft) (domain.Recipe, error)
	readFn   func(ctx context.Context, id string) (domain.Recipe, error)
	updateFn func(ctx context.Context, id string, draft domain.RecipeDraft) (domain.Recipe, error)
}

func (g *fakeRecipeGateway) CreateRecipe(ctx context.Context, draft domain.RecipeDraft) (domain.Recipe, error) {
	g.mu.Lock()
	g.createCalls = append(g.createCalls, draft)
	fn := g.createFn
	g.mu.Unlock()
	if fn != nil {
		return fn(ctx, draft)
	}
	return domain.Recipe{ID: "new-id", Name: draft.Name}, nil
}

func (g *fakeRecipeGateway) GetRecipeByID(ctx context.Context, id string) (domain.Recipe, error) {
	g.mu.Lock()
	g.readCalls = append(g.readCalls, id)
	fn := g.readFn
	g.mu.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	return domain.Recipe{ID: id}, nil
}

func (g *fakeRecipeGateway) UpdateRecipeByID(ctx context.Context, id string, draft domain.RecipeDraft) (domain.Recipe, error) {
	g.mu.Lock()
	g.updateCalls = append(g.updateCalls, updateCall{id: id, draft: draft})
	fn := g.updateFn
	g.mu.Unlock()
	if fn != nil {
		return fn(ctx, id, draft)
	}
	return domain.Recipe{ID: id, Name: draft.Name}, nil
}

func (g *fakeRecipeGateway) creates() []domain.RecipeDraft {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.RecipeDraft(nil), g.createCalls...)
}

func (g *fakeRecipeGateway) reads() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.readCalls...)
}

func (g *fakeRecipeGateway) updates() []updateCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]updateCall(nil), g.updateCalls...)
}

type navRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (n *navRecorder) Push(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *navRecorder) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

func strPtr(s string) *string {
	return &s
}
