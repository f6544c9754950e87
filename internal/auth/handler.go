package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const sessionTTL = 72 * time.Hour

type Handler struct {
	service  *Service
	notifier *Notifier
	secret   []byte
}

type signInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func NewHandler(service *Service, notifier *Notifier, secret []byte) *Handler {
	return &Handler{service: service, notifier: notifier, secret: secret}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-in", h.signIn)
	app.Get("/api/v1/session", h.session)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-out", h.signOut)
}

func (h *Handler) signIn(c *fiber.Ctx) error {
	payload := new(signInRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	admin, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	}

	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"email":    admin.Email,
		"exp":      time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	h.notifier.Publish(SessionEvent{Email: admin.Email, SignedIn: true})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"admin":   admin,
		"token":   signed,
	})
}

// signOut exists so clients have a uniform endpoint and so the session-change
// event fires; the token itself stays valid until it expires.
func (h *Handler) signOut(c *fiber.Ctx) error {
	email := ""
	if token, ok := c.Locals("user").(*jwt.Token); ok && token != nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			email, _ = claims["email"].(string)
		}
	}
	h.notifier.Publish(SessionEvent{Email: email, SignedIn: false})
	return c.JSON(fiber.Map{"message": "Signed out"})
}

// session is the public probe: it reports whether the presented token is a
// live session. Every failure path degrades to "no session", never an error.
func (h *Handler) session(c *fiber.Ctx) error {
	raw := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if raw == "" {
		return c.JSON(fiber.Map{"authenticated": false})
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return h.secret, nil
	})
	if err != nil || !token.Valid {
		return c.JSON(fiber.Map{"authenticated": false})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.JSON(fiber.Map{"authenticated": false})
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"email":         claims["email"],
		"expires_at":    claims["exp"],
	})
}
