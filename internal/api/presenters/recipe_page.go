package presenters

import (
	"Go-Recipe-Admin/domain"
	"Go-Recipe-Admin/pkg/recipe"
	"bytes"
	_ "embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/recipe_form.html
var recipeFormSource string

var recipeFormTemplate = template.Must(template.New("recipe_form").Funcs(template.FuncMap{
	"fieldError": func(v recipe.PageView, field string) string {
		return v.FieldErrors.Get(field)
	},
}).Parse(recipeFormSource))

type RecipeFormPage struct {
	Title        string
	Action       string
	Token        string
	View         recipe.PageView
	Accounts     []domain.Account
	AccountError error
	Notice       string
	ImageUpload  bool
}

// RenderRecipeForm writes the create or edit form as HTML.
func RenderRecipeForm(c *fiber.Ctx, code int, page RecipeFormPage) error {
	var buf bytes.Buffer
	if err := recipeFormTemplate.Execute(&buf, page); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(code).Send(buf.Bytes())
}
