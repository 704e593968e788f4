package routes

import (
	"encoding/gob"
	"log"
	"strconv"

	"recipebox/db"
	"recipebox/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Session values are gob-encoded by the store.
func init() {
	gob.Register([]Flash{})
}

const (
	sessionUserKey  = "user_id"
	sessionFlashKey = "flashes"
)

// Flash is a one-time notice surfaced on the next rendered page.
type Flash struct {
	Kind    string // "success", "warning", "error"
	Message string
}

func addFlash(c *fiber.Ctx, kind, message string) {
	sess, err := store.Get(c)
	if err != nil {
		log.Println("session error:", err)
		return
	}
	flashes, _ := sess.Get(sessionFlashKey).([]Flash)
	flashes = append(flashes, Flash{Kind: kind, Message: message})
	sess.Set(sessionFlashKey, flashes)
	if err := sess.Save(); err != nil {
		log.Println("session save error:", err)
	}
}

// consumeFlashes returns pending flashes and clears them.
func consumeFlashes(c *fiber.Ctx) []Flash {
	sess, err := store.Get(c)
	if err != nil {
		return nil
	}
	flashes, _ := sess.Get(sessionFlashKey).([]Flash)
	if len(flashes) > 0 {
		sess.Delete(sessionFlashKey)
		if err := sess.Save(); err != nil {
			log.Println("session save error:", err)
		}
	}
	return flashes
}

// currentUser resolves the acting identity from the session, nil when the
// request is anonymous.
func currentUser(c *fiber.Ctx) *models.User {
	sess, err := store.Get(c)
	if err != nil {
		return nil
	}
	id, ok := sess.Get(sessionUserKey).(uint)
	if !ok || id == 0 {
		return nil
	}
	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return nil
	}
	return &user
}

// positiveQueryInt reads a query parameter that must be a positive integer;
// any other value is silently treated as absent.
func positiveQueryInt(c *fiber.Ctx, key string) uint {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return uint(n)
}

// validationErrors flattens validator output into a field → message map for
// the templates.
func validationErrors(err error) map[string]string {
	out := map[string]string{}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["form"] = "Invalid submission"
		return out
	}
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "This field is required"
		case "min":
			out[fe.Field()] = "Too short (minimum " + fe.Param() + ")"
		case "max":
			out[fe.Field()] = "Too long (maximum " + fe.Param() + ")"
		case "gt", "gte":
			out[fe.Field()] = "Must be greater than " + fe.Param()
		case "lte":
			out[fe.Field()] = "Must be at most " + fe.Param()
		case "email":
			out[fe.Field()] = "Must be a valid email address"
		case "eq":
			out[fe.Field()] = "Confirmation is required"
		default:
			out[fe.Field()] = "Invalid value"
		}
	}
	return out
}

// render wraps c.Render, adding the values every page needs.
func render(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["User"] = currentUser(c)
	bind["Flashes"] = consumeFlashes(c)
	token, _ := c.Locals("csrf").(string)
	bind["CSRF"] = token
	return c.Render(name, bind)
}
