package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentportal/internal/app/services"
	"github.com/yigit/studentportal/internal/app/web"
	"github.com/yigit/studentportal/internal/middleware"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

// ProfileController serves the profile page and the digital ID
type ProfileController struct {
	profileService *services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// Page renders the profile
func (c *ProfileController) Page(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}
	view := c.profileService.GetProfile(ctx.Request.Context(), user)
	ctx.HTML(http.StatusOK, web.TemplateProfile, newPage(ctx, "My Profile", view))
}

// QRCode renders the digital ID as a PNG
func (c *ProfileController) QRCode(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}
	png, err := c.profileService.DigitalID(user)
	if err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.Header("Cache-Control", "private, max-age=300")
	ctx.Data(http.StatusOK, "image/png", png)
}

// API returns the profile as JSON
func (c *ProfileController) API(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrSessionRequired)
		return
	}
	respond(ctx, http.StatusOK, c.profileService.GetProfile(ctx.Request.Context(), user), "")
}
