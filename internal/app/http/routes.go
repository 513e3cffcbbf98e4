package routes

import (
	adminapi "dreamnest-app/internal/api/admin"
	authapi "dreamnest-app/internal/api/auth"
	authorapi "dreamnest-app/internal/api/author"
	"dreamnest-app/internal/api/billing"
	"dreamnest-app/internal/api/bookmarks"
	booksapi "dreamnest-app/internal/api/books"
	"dreamnest-app/internal/api/kids"
	"dreamnest-app/internal/api/profile"
	readingapi "dreamnest-app/internal/api/reading"
	stripewebhooks "dreamnest-app/internal/api/stripewebhook"
	"dreamnest-app/internal/app/http/middleware"
	"dreamnest-app/internal/domain/access"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Webhook gets the raw body: no session resolution, no sanitization.
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ✅ Apply input sanitization to public routes only
	public := r.Group("/")
	public.Use(middleware.SanitizeInput())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.POST("/logout", authapi.Logout)
	public.GET("/verify", authapi.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Parent app: any authenticated user.
	app := r.Group("/app")
	app.Use(middleware.ResolveSession(), middleware.RequireAuth())

	app.GET("/me", profile.GetCurrentUser)
	app.PUT("/me", profile.UpdateProfile)
	app.POST("/onboarding/complete", profile.CompleteOnboarding)

	app.GET("/library", booksapi.ListBooks)
	app.GET("/books/:id", booksapi.GetBook)
	app.GET("/books/:id/read", booksapi.Read)

	app.PUT("/books/:id/progress", readingapi.UpdateProgress)
	app.POST("/books/:id/complete", readingapi.MarkCompleted)
	app.POST("/books/:id/reading-time", readingapi.IncrementReadingTime)
	app.GET("/reading/continue", readingapi.ContinueReading)
	app.GET("/reading/completed", readingapi.CompletedBooks)

	app.POST("/books/:id/bookmark", bookmarks.Toggle)
	app.GET("/bookmarks", bookmarks.List)

	app.GET("/kids", kids.List)
	app.POST("/kids", kids.Create)
	app.PUT("/kids/:id", kids.Update)
	app.DELETE("/kids/:id", kids.Delete)

	app.POST("/checkout", billing.CreateCheckoutSession)
	app.POST("/billing-portal", billing.CreateBillingPortal)

	// Author area. /author/apply is reachable by any authenticated user so
	// parents can request the role they do not have yet.
	author := r.Group("/author")
	author.Use(
		middleware.ResolveSession(),
		middleware.RequireRole(middleware.LookupRole, access.RoleAuthor, "/author/apply"),
	)

	author.POST("/apply", authorapi.Apply)
	author.GET("/apply", authorapi.ApplicationStatus)

	author.GET("/books", authorapi.ListMyBooks)
	author.POST("/books", authorapi.CreateBook)
	author.PUT("/books/:id", authorapi.UpdateBook)
	author.DELETE("/books/:id", authorapi.DeleteBook)
	author.POST("/books/:id/publish", authorapi.PublishBook)
	author.POST("/books/:id/unpublish", authorapi.UnpublishBook)

	author.GET("/earnings", authorapi.Earnings)
	author.GET("/payouts", authorapi.ListMyPayouts)

	author.GET("/books/:id/pages", authorapi.ListPages)
	author.PUT("/books/:id/pages/reorder", authorapi.ReorderPages)
	author.POST("/books/:id/pages", authorapi.CreatePage)
	author.PUT("/books/:id/pages/:pageIndex", authorapi.UpdatePage)
	author.DELETE("/books/:id/pages/:pageIndex", authorapi.DeletePage)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(
		middleware.ResolveSession(),
		middleware.RequireRole(middleware.LookupRole, access.RoleAdmin),
	)

	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/users/:id/role", adminapi.SetUserRole)
	admin.GET("/subscriptions", adminapi.ListSubscriptions)
	admin.GET("/applications", adminapi.ListApplications)
	admin.POST("/applications/:id/approve", adminapi.ApproveApplication)
	admin.POST("/applications/:id/reject", adminapi.RejectApplication)

	admin.GET("/payouts", adminapi.ListPayouts)
	admin.POST("/payouts/:id/approve", adminapi.ApprovePayout)
	admin.POST("/payouts/:id/pay", adminapi.MarkPayoutPaid)
	admin.POST("/payouts/:id/cancel", adminapi.CancelPayout)
	admin.GET("/payouts/periods", adminapi.ListPeriods)
	admin.POST("/payouts/periods", adminapi.GetOrCreatePeriod)
	admin.PUT("/payouts/periods/:id", adminapi.UpdatePeriod)
	admin.POST("/payouts/periods/:id/calculate", adminapi.CalculatePeriod)
}
