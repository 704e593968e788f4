package routes

import (
	"log"
	"path/filepath"

	"recipebox/models"
	"recipebox/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const flashNotFound = "Recipe not found."

// RecipeForm carries a create or edit submission.
type RecipeForm struct {
	Title        string `form:"title" validate:"required,min=3,max=255"`
	Description  string `form:"description" validate:"required"`
	Ingredients  string `form:"ingredients" validate:"required"`
	Instructions string `form:"instructions" validate:"required"`
	CategoryID   uint   `form:"categoryId" validate:"required,gt=0"`
	TagIDs       []uint `form:"tagIds"`
}

// RatingForm carries a rating submission.
type RatingForm struct {
	Score int `form:"score" validate:"required,gte=1,lte=5"`
}

// DeleteForm is the delete confirmation; deletion happens only when it
// validates.
type DeleteForm struct {
	Confirm string `form:"confirm" validate:"required,eq=yes"`
}

// canManage is the single ownership predicate for detail, edit, and delete:
// the acting identity must be the author or hold the admin role.
func canManage(user *models.User, recipe *models.Recipe) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin() || recipe.UserID == user.ID
}

// loadRecipe resolves the :id path parameter. Denial and absence produce the
// same warning flash and redirect, so non-owners cannot probe for existence.
func loadRecipe(c *fiber.Ctx) (*models.Recipe, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		addFlash(c, "warning", flashNotFound)
		return nil, c.Redirect("/recipe")
	}
	recipe, err := recipeService.Find(uint(id))
	if err != nil {
		addFlash(c, "warning", flashNotFound)
		return nil, c.Redirect("/recipe")
	}
	return recipe, nil
}

// GET /recipe
func recipeIndex(c *fiber.Ctx) error {
	categoryID := positiveQueryInt(c, "categoryId")
	tagID := positiveQueryInt(c, "tagId")
	page := int(positiveQueryInt(c, "page"))
	if page == 0 {
		page = 1
	}

	user := currentUser(c)

	var (
		pagination *services.Pagination
		err        error
	)
	// Anonymous visitors and admins see the unfiltered set; everyone else
	// only their own recipes.
	if user == nil || user.IsAdmin() {
		pagination, err = recipeService.AllPaginatedList(page, categoryID, tagID)
	} else {
		pagination, err = recipeService.PaginatedList(page, user.ID, categoryID, tagID)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list recipes")
	}

	categories, err := categoryService.FindAll()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load categories")
	}
	tags, err := tagService.FindAll()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load tags")
	}

	return render(c, "recipes/index", fiber.Map{
		"Pagination": pagination,
		"Categories": categories,
		"Tags":       tags,
		"CategoryID": categoryID,
		"TagID":      tagID,
	})
}

// GET /recipe/:id
func recipeShow(c *fiber.Ctx) error {
	recipe, err := loadRecipe(c)
	if recipe == nil {
		return err
	}
	if !canManage(currentUser(c), recipe) {
		addFlash(c, "warning", flashNotFound)
		return c.Redirect("/recipe")
	}
	return render(c, "recipes/show", fiber.Map{
		"Recipe":   recipe,
		"AvgScore": recipe.AverageRating(),
	})
}

// GET /recipe/create
func recipeCreateForm(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		addFlash(c, "error", "You must be logged in to create a recipe.")
		return c.Redirect("/login")
	}
	return renderRecipeForm(c, "recipes/create", &RecipeForm{}, nil)
}

// POST /recipe/create
func recipeCreate(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		addFlash(c, "error", "You must be logged in to create a recipe.")
		return c.Redirect("/login")
	}

	var form RecipeForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to parse form")
	}
	if err := validate.Struct(&form); err != nil {
		return renderRecipeForm(c, "recipes/create", &form, validationErrors(err))
	}

	recipe := &models.Recipe{
		Title:        form.Title,
		Description:  form.Description,
		Ingredients:  form.Ingredients,
		Instructions: form.Instructions,
		CategoryID:   form.CategoryID,
		UserID:       user.ID,
		Tags:         tagRefs(form.TagIDs),
	}
	if image, err := saveImage(c); err == nil && image != "" {
		recipe.Image = image
	}
	if err := recipeService.Save(recipe); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save recipe")
	}

	addFlash(c, "success", "Recipe created successfully.")
	return c.Redirect("/recipe")
}

// GET /recipe/:id/edit
func recipeEditForm(c *fiber.Ctx) error {
	recipe, err := loadRecipe(c)
	if recipe == nil {
		return err
	}
	if !canManage(currentUser(c), recipe) {
		addFlash(c, "warning", flashNotFound)
		return c.Redirect("/recipe")
	}

	form := RecipeForm{
		Title:        recipe.Title,
		Description:  recipe.Description,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
		CategoryID:   recipe.CategoryID,
	}
	for _, tag := range recipe.Tags {
		form.TagIDs = append(form.TagIDs, tag.ID)
	}
	return renderRecipeForm(c, "recipes/edit", &form, nil, fiber.Map{"Recipe": recipe})
}

// PUT /recipe/:id/edit
func recipeEdit(c *fiber.Ctx) error {
	recipe, err := loadRecipe(c)
	if recipe == nil {
		return err
	}
	if !canManage(currentUser(c), recipe) {
		addFlash(c, "warning", flashNotFound)
		return c.Redirect("/recipe")
	}

	var form RecipeForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to parse form")
	}
	if err := validate.Struct(&form); err != nil {
		return renderRecipeForm(c, "recipes/edit", &form, validationErrors(err), fiber.Map{"Recipe": recipe})
	}

	recipe.Title = form.Title
	recipe.Description = form.Description
	recipe.Ingredients = form.Ingredients
	recipe.Instructions = form.Instructions
	recipe.CategoryID = form.CategoryID
	recipe.Tags = tagRefs(form.TagIDs)
	if image, err := saveImage(c); err == nil && image != "" {
		recipe.Image = image
	}
	if err := recipeService.Save(recipe); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save recipe")
	}

	addFlash(c, "success", "Recipe updated successfully.")
	return c.Redirect("/recipe")
}

// GET /recipe/:id/delete
func recipeDeleteForm(c *fiber.Ctx) error {
	recipe, err := loadRecipe(c)
	if recipe == nil {
		return err
	}
	if !canManage(currentUser(c), recipe) {
		addFlash(c, "warning", flashNotFound)
		return c.Redirect("/recipe")
	}
	return render(c, "recipes/delete", fiber.Map{"Recipe": recipe, "Errors": map[string]string{}})
}

// DELETE /recipe/:id/delete
func recipeDelete(c *fiber.Ctx) error {
	recipe, err := loadRecipe(c)
	if recipe == nil {
		return err
	}
	if !canManage(currentUser(c), recipe) {
		addFlash(c, "warning", flashNotFound)
		return c.Redirect("/recipe")
	}

	var form DeleteForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to parse form")
	}
	if err := validate.Struct(&form); err != nil {
		return render(c, "recipes/delete", fiber.Map{
			"Recipe": recipe,
			"Errors": validationErrors(err),
		})
	}

	if err := recipeService.Delete(recipe); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete recipe")
	}
	addFlash(c, "success", "Recipe deleted successfully.")
	return c.Redirect("/recipe")
}

// GET /recipe/:id/rate
func recipeRateForm(c *fiber.Ctx) error {
	if currentUser(c) == nil {
		return fiber.NewError(fiber.StatusForbidden, "You must be logged in to rate a recipe")
	}
	recipe, err := loadRecipe(c)
	if recipe == nil {
		return err
	}
	return render(c, "recipes/rate", fiber.Map{"Recipe": recipe, "Errors": map[string]string{}})
}

// POST /recipe/:id/rate
func recipeRate(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		// Hard denial, unlike the redirect the create handler uses.
		return fiber.NewError(fiber.StatusForbidden, "You must be logged in to rate a recipe")
	}
	recipe, err := loadRecipe(c)
	if recipe == nil {
		return err
	}

	var form RatingForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to parse form")
	}
	if err := validate.Struct(&form); err != nil {
		return render(c, "recipes/rate", fiber.Map{
			"Recipe": recipe,
			"Errors": validationErrors(err),
		})
	}

	if _, err := ratingService.Save(user.ID, recipe.ID, form.Score); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save rating")
	}
	publishRating(ratingEvent{
		RecipeID: recipe.ID,
		Title:    recipe.Title,
		Score:    form.Score,
	})

	addFlash(c, "success", "Thanks for rating!")
	return c.Redirect("/recipe/" + c.Params("id"))
}

// GET /recipe/top-rated
func recipeTopRated(c *fiber.Ctx) error {
	ranked, err := recipeService.TopRated()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load top rated recipes")
	}
	return render(c, "recipes/top_rated", fiber.Map{"Ranked": ranked})
}

func renderRecipeForm(c *fiber.Ctx, name string, form *RecipeForm, errs map[string]string, extra ...fiber.Map) error {
	categories, err := categoryService.FindAll()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load categories")
	}
	tags, err := tagService.FindAll()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load tags")
	}
	if errs == nil {
		errs = map[string]string{}
	}
	bind := fiber.Map{
		"Form":       form,
		"Errors":     errs,
		"Categories": categories,
		"Tags":       tags,
	}
	for _, m := range extra {
		for k, v := range m {
			bind[k] = v
		}
	}
	return render(c, name, bind)
}

func tagRefs(ids []uint) []models.Tag {
	tags := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			tags = append(tags, models.Tag{ID: id})
		}
	}
	return tags
}

// saveImage stores an optional uploaded image under ./uploads with a unique
// name, returning the public path. Absence of a file is not an error.
func saveImage(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return "", nil
	}
	filename := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, "./uploads/"+filename); err != nil {
		log.Println("failed to save upload:", err)
		return "", err
	}
	return "/uploads/" + filename, nil
}
