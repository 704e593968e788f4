package routes

import (
	"recipebox/db"
	"recipebox/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterForm struct {
	Name     string `form:"name" validate:"required,min=2,max=100"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
}

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// GET /register
func registerForm(c *fiber.Ctx) error {
	return render(c, "auth/register", fiber.Map{"Form": &RegisterForm{}, "Errors": map[string]string{}})
}

// POST /register
func register(c *fiber.Ctx) error {
	var form RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to parse form")
	}
	if err := validate.Struct(&form); err != nil {
		return render(c, "auth/register", fiber.Map{"Form": &form, "Errors": validationErrors(err)})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}
	user := models.User{Name: form.Name, Email: form.Email, PasswordHash: string(hash)}
	if err := db.DB.Create(&user).Error; err != nil {
		return render(c, "auth/register", fiber.Map{
			"Form":   &form,
			"Errors": map[string]string{"Email": "This email is already registered"},
		})
	}

	if err := signIn(c, user.ID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to start session")
	}
	addFlash(c, "success", "Welcome, "+user.Name+"!")
	return c.Redirect("/recipe")
}

// GET /login
func loginForm(c *fiber.Ctx) error {
	return render(c, "auth/login", fiber.Map{"Form": &LoginForm{}, "Errors": map[string]string{}})
}

// POST /login
func login(c *fiber.Ctx) error {
	var form LoginForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to parse form")
	}
	if err := validate.Struct(&form); err != nil {
		return render(c, "auth/login", fiber.Map{"Form": &form, "Errors": validationErrors(err)})
	}

	invalid := fiber.Map{
		"Form":   &form,
		"Errors": map[string]string{"form": "Invalid email or password"},
	}
	var user models.User
	if err := db.DB.Where("email = ?", form.Email).First(&user).Error; err != nil {
		return render(c, "auth/login", invalid)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
		return render(c, "auth/login", invalid)
	}

	if err := signIn(c, user.ID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to start session")
	}
	addFlash(c, "success", "Logged in successfully.")
	return c.Redirect("/recipe")
}

// POST /logout
func logout(c *fiber.Ctx) error {
	sess, err := store.Get(c)
	if err == nil {
		if err := sess.Destroy(); err == nil {
			addFlash(c, "success", "Logged out.")
		}
	}
	return c.Redirect("/recipe")
}

func signIn(c *fiber.Ctx, userID uint) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	// Fresh session id on privilege change.
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionUserKey, userID)
	return sess.Save()
}
