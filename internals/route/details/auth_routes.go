package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "formshub_backend/internals/features/users/auth/route"
	authService "formshub_backend/internals/features/users/auth/service"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, otp *authService.OTPService) {
	authRoute.AuthRoutes(app, db, otp)
}
