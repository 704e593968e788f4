package routes

import (
	"recipebox/db"
	"recipebox/ratelim"
	"recipebox/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

var (
	validate = validator.New()
	store    *session.Store

	recipeService   *services.RecipeService
	ratingService   *services.RatingService
	categoryService *services.CategoryService
	tagService      *services.TagService
)

// SetupRoutes wires the handlers, services, and middleware onto the app.
// Call after db.DB is initialized.
func SetupRoutes(app *fiber.App, sessions *session.Store) {
	store = sessions

	recipeService = services.NewRecipeService(db.DB)
	ratingService = services.NewRatingService(db.DB)
	categoryService = services.NewCategoryService(db.DB)
	tagService = services.NewTagService(db.DB)

	// HTML forms can only send GET/POST; a hidden _method field carries the
	// real verb for edit and delete submissions.
	app.Use(methodOverride)

	startFeed()
	app.Get("/ws", feedHandler())

	limiter := ratelim.NewRateLimiter(1, 30)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/recipe")
	})

	app.Get("/register", registerForm)
	app.Post("/register", limiter.Limit(register))
	app.Get("/login", loginForm)
	app.Post("/login", limiter.Limit(login))
	app.Post("/logout", logout)

	// Fixed paths first so they are never shadowed by the :id routes.
	app.Get("/recipe", recipeIndex)
	app.Get("/recipe/top-rated", recipeTopRated)
	app.Get("/recipe/create", recipeCreateForm)
	app.Post("/recipe/create", recipeCreate)

	// Recipe ids are digit strings with no leading zero.
	app.Get("/recipe/:id<regex([1-9][0-9]*)>", recipeShow)
	app.Get("/recipe/:id<regex([1-9][0-9]*)>/edit", recipeEditForm)
	app.Put("/recipe/:id<regex([1-9][0-9]*)>/edit", recipeEdit)
	app.Get("/recipe/:id<regex([1-9][0-9]*)>/delete", recipeDeleteForm)
	app.Delete("/recipe/:id<regex([1-9][0-9]*)>/delete", recipeDelete)
	app.Get("/recipe/:id<regex([1-9][0-9]*)>/rate", recipeRateForm)
	app.Post("/recipe/:id<regex([1-9][0-9]*)>/rate", limiter.Limit(recipeRate))
}

func methodOverride(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		switch c.FormValue("_method") {
		case fiber.MethodPut:
			c.Method(fiber.MethodPut)
		case fiber.MethodDelete:
			c.Method(fiber.MethodDelete)
		}
	}
	return c.Next()
}
