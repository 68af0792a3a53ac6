package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelbooking/internal/auth"
	"github.com/dharmasatrya/travelbooking/internal/models"
	"github.com/dharmasatrya/travelbooking/internal/session"
	"github.com/dharmasatrya/travelbooking/internal/workflow"
)

const (
	HeaderSessionID = "X-Session-ID"
	QuerySessionID  = "session_id"
)

// AuthAPI is the part of the booking API the auth proxy routes forward to.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Me(ctx context.Context, token string) (*models.User, error)
	GoogleCallback(ctx context.Context, code, state string) (*models.AuthResponse, error)
}

type Handler struct {
	svc      *workflow.Service
	store    session.Store
	auth     AuthAPI
	upgrader websocket.Upgrader
}

func NewHandler(svc *workflow.Service, store session.Store, authAPI AuthAPI) *Handler {
	return &Handler{
		svc:   svc,
		store: store,
		auth:  authAPI,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Routes mounts every route under g.
func (h *Handler) Routes(g *echo.Group) {
	g.POST("/search", h.Search)
	g.GET("/search/results", h.Results)
	g.POST("/routes/select", h.SelectRoute)

	g.GET("/seats", h.GetSeats)
	g.POST("/seats", h.OpenSeats)
	g.POST("/seats/toggle", h.ToggleSeat)
	g.POST("/seats/confirm", h.ConfirmSeats)
	g.DELETE("/seats", h.CloseSeats)

	g.GET("/passengers", h.ListPassengers)
	g.PUT("/passengers/:index/name", h.SavePassengerName)
	g.DELETE("/passengers/:index/name", h.EditPassengerName)
	g.PUT("/passengers/:index/contact", h.SavePassengerContact)
	g.DELETE("/passengers/:index/contact", h.EditPassengerContact)
	g.PUT("/contact", h.SaveContact)

	g.POST("/bookings", h.SubmitBooking)
	g.GET("/bookings/current", h.BookingSummary)
	g.POST("/payments/initialize", h.InitializePayment)

	g.GET("/session", h.SessionStatus)
	g.DELETE("/session", h.ResetSession)
	g.GET("/session/countdown", h.CountdownStream)

	a := g.Group("/auth")
	a.POST("/login", h.Login)
	a.POST("/register", h.Register)
	a.GET("/me", h.Me)
	a.GET("/google/callback", h.GoogleCallback)
}

// session resolves the caller's session. A search may start a new one; every
// other step needs an existing id.
func (h *Handler) session(c echo.Context, create bool) (*session.Session, error) {
	id := c.Request().Header.Get(HeaderSessionID)
	if id == "" {
		id = c.QueryParam(QuerySessionID)
	}
	if id == "" && create {
		id = uuid.NewString()
	}
	sess, err := session.New(h.store, id)
	if err != nil {
		return nil, err
	}
	c.Response().Header().Set(HeaderSessionID, sess.ID)
	return sess, nil
}

func bearerToken(c echo.Context) string {
	token, err := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return ""
	}
	return token
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
