package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/studentportal/internal/app/controllers"
	"github.com/yigit/studentportal/internal/middleware"
)

// Controllers groups every handler the router mounts
type Controllers struct {
	Auth        *controllers.AuthController
	Application *controllers.ApplicationController
	Dashboard   *controllers.DashboardController
	Document    *controllers.DocumentController
	Finance     *controllers.FinanceController
	Visa        *controllers.VisaController
	Profile     *controllers.ProfileController
	Support     *controllers.SupportController
	Services    *controllers.ServicesController
	Health      *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, sessions *middleware.SessionMiddleware) {
	router.Use(sessions.Restore())

	// --- HTML pages ---
	pages := router.Group("")
	pages.Use(sessions.PageGate())
	{
		// Root only redirects; the gate answers it
		pages.GET("/", controllers.NotFound)

		pages.GET("/login", c.Auth.LoginPage)
		pages.POST("/login", c.Auth.Login)
		pages.POST("/logout", c.Auth.Logout)

		pages.GET("/register", c.Application.RegisterPage)
		pages.POST("/register", c.Application.RegisterStep)

		pages.GET("/dashboard", c.Dashboard.Page)

		pages.GET("/documents", c.Document.Page)
		pages.GET("/documents/download/:name", c.Document.Download)

		pages.GET("/finances", c.Finance.Page)
		pages.GET("/visa", c.Visa.Page)

		pages.GET("/profile", c.Profile.Page)
		pages.GET("/profile/qr.png", c.Profile.QRCode)

		pages.GET("/support", c.Support.Page)
		pages.POST("/support", c.Support.Submit)

		pages.GET("/services", c.Services.Page)
		pages.POST("/services", c.Services.Apply)
	}

	// --- JSON API ---
	v1 := router.Group("/api/v1")
	v1.GET("/health", c.Health.Health)

	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.LoginAPI)
		auth.POST("/logout", c.Auth.LogoutAPI)
		auth.POST("/register", c.Auth.RegisterAPI)
	}

	applications := v1.Group("/applications")
	{
		applications.GET("/options", c.Application.OptionsAPI)
		applications.POST("", c.Application.SubmitAPI)
	}

	// --- Authenticated API routes ---
	authenticated := v1.Group("")
	authenticated.Use(sessions.APIAuth())
	{
		authenticated.GET("/session", c.Auth.Session)
		authenticated.GET("/dashboard", c.Dashboard.API)
		authenticated.GET("/documents", c.Document.ListAPI)
		authenticated.GET("/documents/:name", c.Document.DownloadAPI)
		authenticated.GET("/finances", c.Finance.API)
		authenticated.GET("/visa", c.Visa.API)
		authenticated.GET("/profile", c.Profile.API)
		authenticated.GET("/support", c.Support.API)
		authenticated.POST("/support/tickets", c.Support.SubmitAPI)
		authenticated.GET("/services", c.Services.API)
		authenticated.POST("/services/hostel-applications", c.Services.ApplyAPI)
	}

	// Unknown sub-paths of protected pages still redirect guests to /login
	router.NoRoute(sessions.PageGate(), controllers.NotFound)
}
