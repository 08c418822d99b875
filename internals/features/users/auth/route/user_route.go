// file: internals/features/users/auth/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "formshub_backend/internals/features/users/auth/controller"
	"formshub_backend/internals/features/users/auth/service"
	rateLimiter "formshub_backend/internals/middlewares"
	authMiddleware "formshub_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, otp *service.OTPService) {
	authController := controller.NewAuthController(db, otp)

	// ==========================
	// PUBLIC — Base: /api/auth
	// ==========================
	baseAuth := app.Group("/api/auth")

	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	baseAuth.Post("/refresh-token", authController.RefreshToken)
	baseAuth.Post("/logout", authController.Logout)

	// Reset password via OTP (3 langkah)
	baseAuth.Post("/forgot-password", rateLimiter.ForgotPasswordRateLimiter(), authController.ForgotPassword)
	baseAuth.Post("/forgot-password/verify", authController.VerifyOTP)
	baseAuth.Post("/forgot-password/reset", authController.ResetPassword)

	// ==========================
	// PROTECTED — Base: /api/auth (butuh JWT)
	// ==========================
	protectedAuth := app.Group("/api/auth", authMiddleware.AuthMiddleware(db))

	protectedAuth.Get("/me", authController.Me)
	protectedAuth.Put("/me", authController.UpdateProfile)
	protectedAuth.Post("/change-password", authController.ChangePassword)
	protectedAuth.Post("/revoke-all", authController.RevokeAllSessions)
}
