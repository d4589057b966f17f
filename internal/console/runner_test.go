package console

import (
	"Go-Recipe-Admin/domain"
	"Go-Recipe-Admin/internal/utils"
	"Go-Recipe-Admin/pkg/gateway"
	"Go-Recipe-Admin/pkg/recipe"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keep answers a prompt with its default value.
const keep = "<keep>"

type scriptedDriver struct {
	inputs   []string
	selects  []int
	confirms []bool
	infos    []string
	asked    []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.inputs) == 0 {
		return "", errors.New("unexpected input prompt: " + cfg.Message)
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	if v == keep {
		return cfg.Default, nil
	}
	return v, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.confirms) == 0 {
		return false, errors.New("unexpected confirm prompt: " + cfg.Message)
	}
	v := d.confirms[0]
	d.confirms = d.confirms[1:]
	return v, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.selects) == 0 {
		return 0, errors.New("unexpected select prompt: " + cfg.Message)
	}
	v := d.selects[0]
	d.selects = d.selects[1:]
	if v < 0 {
		return cfg.DefaultIndex, nil
	}
	return v, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

type stubRecipes struct {
	stored  map[string]domain.Recipe
	creates []domain.RecipeDraft
	updates []domain.RecipeDraft
	failErr error
}

func (s *stubRecipes) CreateRecipe(_ context.Context, draft domain.RecipeDraft) (domain.Recipe, error) {
	s.creates = append(s.creates, draft)
	if s.failErr != nil {
		return domain.Recipe{}, s.failErr
	}
	return domain.Recipe{ID: "new", Name: draft.Name}, nil
}

func (s *stubRecipes) GetRecipeByID(_ context.Context, id string) (domain.Recipe, error) {
	r, ok := s.stored[id]
	if !ok {
		return domain.Recipe{}, &gateway.GatewayError{Op: "recipes.read", StatusCode: 404, Message: "not found", Err: domain.ErrRecipeNotFound}
	}
	return r, nil
}

func (s *stubRecipes) UpdateRecipeByID(_ context.Context, id string, draft domain.RecipeDraft) (domain.Recipe, error) {
	s.updates = append(s.updates, draft)
	if s.failErr != nil {
		return domain.Recipe{}, s.failErr
	}
	return domain.Recipe{ID: id, Name: draft.Name, DifficultyLevel: draft.DifficultyLevel, AccountID: draft.AccountID}, nil
}

type stubAccounts struct {
	accounts []domain.Account
	err      error
}

func (s *stubAccounts) GetAccounts(context.Context, string) ([]domain.Account, error) {
	return s.accounts, s.err
}

func strPtr(s string) *string { return &s }

func newTestRunner(driver PromptDriver, recipes *stubRecipes, accounts *stubAccounts) *Runner {
	return NewRunner(driver, recipes, accounts, recipe.NewRecipeCache(), utils.NewValidator())
}

func TestRunCreateRepromptsInvalidFields(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"", "3", "fluffy", "", "", "Pancakes"},
		selects: []int{1},
	}
	recipes := &stubRecipes{}
	accounts := &stubAccounts{accounts: []domain.Account{{ID: "acc-1", Name: "Chef"}}}

	path, err := newTestRunner(driver, recipes, accounts).RunCreate(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, domain.RecipesListPath, path)
	require.Len(t, recipes.creates, 1)
	created := recipes.creates[0]
	assert.Equal(t, "Pancakes", created.Name)
	assert.Equal(t, 3, created.DifficultyLevel)
	assert.Equal(t, "fluffy", created.Description)
	require.NotNil(t, created.AccountID)
	assert.Equal(t, "acc-1", *created.AccountID)
	assert.Equal(t, "Name", driver.asked[len(driver.asked)-1])
	assert.Empty(t, driver.inputs)
}

func TestRunCreatePreselectsAccount(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"Soup", keep, keep, keep, ""},
		selects: []int{-1},
	}
	recipes := &stubRecipes{}
	accounts := &stubAccounts{accounts: []domain.Account{{ID: "acc-1", Name: "A"}, {ID: "acc-2", Name: "B"}}}

	_, err := newTestRunner(driver, recipes, accounts).RunCreate(context.Background(), "acc-2")
	require.NoError(t, err)

	require.Len(t, recipes.creates, 1)
	assert.Equal(t, 0, recipes.creates[0].DifficultyLevel)
	assert.Equal(t, "acc-2", recipes.creates[0].AccountIDValue())
}

func TestRunCreateAccountLookupFailureFallsBackToInput(t *testing.T) {
	driver := &scriptedDriver{
		inputs: []string{"Soup", "1", "", "", "", "acc-9"},
	}
	recipes := &stubRecipes{}
	accounts := &stubAccounts{err: errors.New("offline")}

	_, err := newTestRunner(driver, recipes, accounts).RunCreate(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, recipes.creates, 1)
	assert.Equal(t, "acc-9", recipes.creates[0].AccountIDValue())
	assert.Contains(t, driver.infos, domain.MessageFailedGetAccounts+": offline")
}

func TestRunCreateGatewayFailureDeclinedRetry(t *testing.T) {
	failure := &gateway.GatewayError{Op: "recipes.create", StatusCode: 500, Message: "Internal Server Error"}
	driver := &scriptedDriver{
		inputs:   []string{"Soup", "1", "", "", ""},
		selects:  []int{0},
		confirms: []bool{false},
	}
	recipes := &stubRecipes{failErr: failure}

	path, err := newTestRunner(driver, recipes, &stubAccounts{}).RunCreate(context.Background(), "")
	require.Error(t, err)

	assert.ErrorIs(t, err, failure)
	assert.Empty(t, path)
	assert.Contains(t, driver.infos, "Error: Internal Server Error")
}

func TestRunEditKeepsLoadedValues(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"New name", keep, keep, keep, ""},
		selects: []int{-1},
	}
	recipes := &stubRecipes{stored: map[string]domain.Recipe{
		"r1": {ID: "r1", Name: "Old", DifficultyLevel: 2, Description: "desc", AccountID: strPtr("acc-2")},
	}}
	accounts := &stubAccounts{accounts: []domain.Account{{ID: "acc-1", Name: "A"}, {ID: "acc-2", Name: "B"}}}

	path, err := newTestRunner(driver, recipes, accounts).RunEdit(context.Background(), "r1")
	require.NoError(t, err)

	assert.Equal(t, domain.RecipesListPath, path)
	require.Len(t, recipes.updates, 1)
	updated := recipes.updates[0]
	assert.Equal(t, "New name", updated.Name)
	assert.Equal(t, 2, updated.DifficultyLevel)
	assert.Equal(t, "desc", updated.Description)
	assert.Equal(t, "acc-2", updated.AccountIDValue())
}

func TestRunEditKeepsAccountMissingFromLookup(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{keep, keep, keep, keep, ""},
		selects: []int{-1},
	}
	recipes := &stubRecipes{stored: map[string]domain.Recipe{
		"r1": {ID: "r1", Name: "Old", DifficultyLevel: 2, AccountID: strPtr("acc-9")},
	}}
	accounts := &stubAccounts{accounts: []domain.Account{{ID: "acc-1", Name: "A"}}}

	_, err := newTestRunner(driver, recipes, accounts).RunEdit(context.Background(), "r1")
	require.NoError(t, err)

	require.Len(t, recipes.updates, 1)
	assert.Equal(t, "acc-9", recipes.updates[0].AccountIDValue())
}

func TestRunEditErrors(t *testing.T) {
	runner := newTestRunner(&scriptedDriver{}, &stubRecipes{}, &stubAccounts{})

	_, err := runner.RunEdit(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingIdentifier)

	_, err = runner.RunEdit(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}
