package handlers

import (
	"Go-Recipe-Admin/domain"
	"Go-Recipe-Admin/internal/api/presenters"
	"Go-Recipe-Admin/internal/utils/storage"
	"Go-Recipe-Admin/pkg/account"
	"Go-Recipe-Admin/pkg/form"
	"Go-Recipe-Admin/pkg/gateway"
	"Go-Recipe-Admin/pkg/recipe"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	fiberutils "github.com/gofiber/fiber/v2/utils"
)

const pageTokenField = "_page"

type (
	RecipePageHandler interface {
		CreateForm(c *fiber.Ctx) error
		SubmitCreate(c *fiber.Ctx) error
		EditForm(c *fiber.Ctx) error
		SubmitEdit(c *fiber.Ctx) error
	}

	RecipePageConfig struct {
		RecipeGateway  recipe.RecipeGateway
		AccountGateway account.AccountGateway
		Cache          *recipe.RecipeCache
		Validator      *validator.Validate
		CreatePages    *recipe.PageStore[*CreateSession]
		EditPages      *recipe.PageStore[*EditSession]
		S3             storage.AwsS3
		Debounce       time.Duration
		SearchTimeout  time.Duration
	}

	recipePageHandler struct {
		RecipePageConfig
	}

	// redirectNavigator remembers where the page asked to go.
	redirectNavigator struct {
		mu     sync.Mutex
		target string
	}

	CreateSession struct {
		Page     *recipe.CreatePage
		Accounts *account.AsyncSelect
		nav      *redirectNavigator
	}

	EditSession struct {
		Page     *recipe.EditPage
		Accounts *account.AsyncSelect
		nav      *redirectNavigator
	}
)

func (n *redirectNavigator) Push(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.target = path
}

func (n *redirectNavigator) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

func (s *CreateSession) Unmount() {
	s.Page.Unmount()
	s.Accounts.Close()
}

func (s *EditSession) Unmount() {
	s.Page.Unmount()
	s.Accounts.Close()
}

func NewRecipePageHandler(cfg RecipePageConfig) RecipePageHandler {
	return &recipePageHandler{RecipePageConfig: cfg}
}

func (h *recipePageHandler) newCreateSession(accountID string) *CreateSession {
	nav := &redirectNavigator{}
	s := &CreateSession{
		Page:     recipe.NewCreatePage(h.RecipeGateway, h.Validator, nav),
		Accounts: h.newAccountSelect(),
		nav:      nav,
	}
	s.Page.Mount(accountID)
	return s
}

func (h *recipePageHandler) newEditSession() *EditSession {
	nav := &redirectNavigator{}
	return &EditSession{
		Page:     recipe.NewEditPage(h.RecipeGateway, h.Cache, h.Validator, nav),
		Accounts: h.newAccountSelect(),
		nav:      nav,
	}
}

func (h *recipePageHandler) newAccountSelect() *account.AsyncSelect {
	return account.NewAsyncSelect(h.AccountGateway,
		account.WithDebounce(h.Debounce),
		account.WithTimeout(h.SearchTimeout),
	)
}

// SessionSelectors finds the account selector of a live create or edit page.
func SessionSelectors(createPages *recipe.PageStore[*CreateSession], editPages *recipe.PageStore[*EditSession]) SelectorLookup {
	return func(token string) (*account.AsyncSelect, bool) {
		if s, ok := createPages.Get(token); ok {
			return s.Accounts, true
		}
		if s, ok := editPages.Get(token); ok {
			return s.Accounts, true
		}
		return nil, false
	}
}

func (h *recipePageHandler) CreateForm(c *fiber.Ctx) error {
	session := h.newCreateSession(fiberutils.CopyString(c.Query(domain.FieldAccountID)))
	token := h.CreatePages.Put(session)
	return h.renderCreate(c, fiber.StatusOK, token, session, "")
}

func (h *recipePageHandler) SubmitCreate(c *fiber.Ctx) error {
	token := c.FormValue(pageTokenField)
	session, ok := h.CreatePages.Get(token)
	if !ok {
		session = h.newCreateSession(fiberutils.CopyString(c.FormValue(domain.FieldAccountID)))
		token = h.CreatePages.Put(session)
	}

	if err := h.applyForm(c, session.Page.SetField); err != nil {
		return h.renderCreate(c, fiber.StatusBadRequest, token, session, err.Error())
	}

	err := session.Page.Submit(c.UserContext())
	if err == nil {
		h.CreatePages.Delete(token)
		log.Infow("recipe create submitted", "page", token)
		return c.Redirect(session.nav.Target(), fiber.StatusSeeOther)
	}
	logSubmitFailure(domain.MessageFailedCreateRecipe, token, err)
	return h.renderCreate(c, submitStatus(err), token, session, submitNotice(err))
}

func (h *recipePageHandler) EditForm(c *fiber.Ctx) error {
	id := fiberutils.CopyString(c.Params("id"))
	session := h.newEditSession()

	if err := session.Page.Load(c.UserContext(), id); err != nil {
		session.Unmount()
		return h.renderEdit(c, loadStatus(err), "", session, "")
	}
	token := h.EditPages.Put(session)
	return h.renderEdit(c, fiber.StatusOK, token, session, "")
}

func (h *recipePageHandler) SubmitEdit(c *fiber.Ctx) error {
	id := fiberutils.CopyString(c.Params("id"))
	token := c.FormValue(pageTokenField)
	session, ok := h.EditPages.Get(token)
	if !ok || session.Page.ID() != id {
		session = h.newEditSession()
		token = h.EditPages.Put(session)
	}

	if err := session.Page.Load(c.UserContext(), id); err != nil {
		h.EditPages.Delete(token)
		return h.renderEdit(c, loadStatus(err), "", session, "")
	}

	if err := h.applyForm(c, session.Page.SetField); err != nil {
		return h.renderEdit(c, fiber.StatusBadRequest, token, session, err.Error())
	}

	err := session.Page.Submit(c.UserContext())
	if err == nil {
		h.EditPages.Delete(token)
		log.Infow("recipe update submitted", "recipe_id", id, "page", token)
		return c.Redirect(session.nav.Target(), fiber.StatusSeeOther)
	}
	logSubmitFailure(domain.MessageFailedUpdateRecipe, token, err)
	return h.renderEdit(c, submitStatus(err), token, session, submitNotice(err))
}

// applyForm copies the posted fields into the draft and uploads image_file when
// present. Values are copied out of fiber's request buffers; the page outlives the request.
func (h *recipePageHandler) applyForm(c *fiber.Ctx, set func(name, raw string) error) error {
	for _, field := range domain.RecipeFields {
		if err := set(field, fiberutils.CopyString(c.FormValue(field))); err != nil {
			return err
		}
	}

	if h.S3 == nil {
		return nil
	}
	file, err := c.FormFile("image_file")
	if err != nil || file == nil || file.Size == 0 {
		return nil
	}
	objectKey, err := h.S3.UploadFile(c.UserContext(), file, "recipes", storage.AllowImage...)
	if err != nil {
		log.Warnw("recipe image upload failed", "error", err)
		return err
	}
	return set(domain.FieldImage, h.S3.GetPublicLinkKey(objectKey))
}

func (h *recipePageHandler) renderCreate(c *fiber.Ctx, code int, token string, session *CreateSession, notice string) error {
	view := session.Page.View()
	accounts, accountErr := h.accountOptions(c.UserContext(), session.Accounts, view.Draft.AccountIDValue())
	return presenters.RenderRecipeForm(c, code, presenters.RecipeFormPage{
		Title:        "Create Recipe",
		Action:       "/recipes/create",
		Token:        token,
		View:         view,
		Accounts:     accounts,
		AccountError: accountErr,
		Notice:       notice,
		ImageUpload:  h.S3 != nil,
	})
}

func (h *recipePageHandler) renderEdit(c *fiber.Ctx, code int, token string, session *EditSession, notice string) error {
	view := session.Page.View()
	var accounts []domain.Account
	var accountErr error
	if view.CanRender() {
		accounts, accountErr = h.accountOptions(c.UserContext(), session.Accounts, view.Draft.AccountIDValue())
	}
	return presenters.RenderRecipeForm(c, code, presenters.RecipeFormPage{
		Title:        "Edit Recipe",
		Action:       "/recipes/edit/" + session.Page.ID(),
		Token:        token,
		View:         view,
		Accounts:     accounts,
		AccountError: accountErr,
		Notice:       notice,
		ImageUpload:  h.S3 != nil,
	})
}

// accountOptions lists the first page of accounts. The draft's current account
// is always kept, even when the lookup misses it or fails.
func (h *recipePageHandler) accountOptions(ctx context.Context, sel *account.AsyncSelect, selected string) ([]domain.Account, error) {
	accounts, err := sel.Search(ctx, "")
	if err != nil {
		accounts = nil
	}
	return domain.WithAccount(accounts, selected), err
}

func logSubmitFailure(msg, token string, err error) {
	if _, invalid := form.AsValidation(err); invalid {
		return
	}
	log.Warnw(msg, "page", token, "error", err)
}

func submitStatus(err error) int {
	if _, invalid := form.AsValidation(err); invalid {
		return fiber.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, form.ErrSubmitInFlight):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrPageClosed):
		return fiber.StatusGone
	}
	if ge, ok := gateway.AsGatewayError(err); ok && ge.StatusCode >= fiber.StatusBadRequest && ge.StatusCode < fiber.StatusInternalServerError {
		return ge.StatusCode
	}
	return fiber.StatusBadGateway
}

func submitNotice(err error) string {
	switch {
	case errors.Is(err, form.ErrSubmitInFlight):
		return domain.MessageSubmitInFlight
	case errors.Is(err, domain.ErrPageClosed):
		return domain.MessageFailedPageExpired
	}
	if _, invalid := form.AsValidation(err); invalid {
		return domain.MessageFailedValidateRecipe
	}
	return ""
}

func loadStatus(err error) int {
	if errors.Is(err, domain.ErrRecipeNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusBadGateway
}
