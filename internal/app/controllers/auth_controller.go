package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/services"
	"github.com/yigit/studentportal/internal/app/web"
	"github.com/yigit/studentportal/internal/middleware"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/auth"
)

// AuthController handles sign in, sign out and the session endpoint
type AuthController struct {
	authService *services.AuthService
	sessions    *middleware.SessionMiddleware
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, sessions *middleware.SessionMiddleware, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// LoginPage renders the sign in form
func (c *AuthController) LoginPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, web.TemplateLogin, newPage(ctx, "Sign in", web.LoginData{}))
}

// Login verifies the credentials and persists the session cookie
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login form payload")
	}
	req.Username = strings.TrimSpace(req.Username)

	data := web.LoginData{Username: req.Username, Errors: map[string]string{}}
	if req.Username == "" {
		data.Errors["username"] = "Username is required"
	}
	if req.Password == "" {
		data.Errors["password"] = "Password is required"
	}
	if len(data.Errors) > 0 {
		ctx.HTML(http.StatusBadRequest, web.TemplateLogin, newPage(ctx, "Sign in", data))
		return
	}

	_, cookie, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		page := newPage(ctx, "Sign in", data)
		page.Error = loginMessage(err)
		ctx.HTML(http.StatusUnauthorized, web.TemplateLogin, page)
		return
	}

	c.sessions.SetCookie(ctx, cookie)
	ctx.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session cookie, with or without a session.
// It is only routed for POST so a cross-site link cannot sign a student out.
func (c *AuthController) Logout(ctx *gin.Context) {
	c.sessions.ClearCookie(ctx)
	if user, ok := middleware.CurrentUser(ctx); ok {
		c.logger.Info().Str("studentID", user.ID).Msg("Student signed out")
	}
	redirectWithFlash(ctx, "/login", FlashOK, MsgSignedOut)
}

// LoginAPI is the JSON variant of Login
func (c *AuthController) LoginAPI(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, cookie, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.sessions.SetCookie(ctx, cookie)
	respond(ctx, http.StatusOK, sessionResponse(user), "Signed in")
}

// LogoutAPI is the JSON variant of Logout
func (c *AuthController) LogoutAPI(ctx *gin.Context) {
	c.sessions.ClearCookie(ctx)
	respond(ctx, http.StatusOK, nil, "Signed out")
}

// Session returns the restored session user
func (c *AuthController) Session(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrSessionRequired)
		return
	}
	respond(ctx, http.StatusOK, sessionResponse(user), "")
}

// RegisterAPI always refuses; accounts come from the application form
func (c *AuthController) RegisterAPI(ctx *gin.Context) {
	middleware.HandleAPIError(ctx, c.authService.Register(ctx.Request.Context()))
}

// loginMessage returns the banner text shown for a failed sign in
func loginMessage(err error) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	if errors.Is(err, apperrors.ErrInvalidCredentials) {
		return apperrors.ErrInvalidCredentials.Error()
	}
	return "Invalid username or password"
}

func sessionResponse(user *auth.User) dto.SessionResponse {
	return dto.SessionResponse{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		ApplicationNumber: user.ApplicationNumber,
		Username:          user.Username,
		ProfileImage:      user.ProfileImage,
	}
}
