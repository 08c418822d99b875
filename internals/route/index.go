// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "formshub_backend/internals/features/users/auth/service"
	"formshub_backend/internals/helpers/ttlstore"
	authMiddleware "formshub_backend/internals/middlewares/auth"
	routeDetails "formshub_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// state OTP reset password hidup in-memory
	otp := authService.NewOTPService(ttlstore.New())

	// ===================== BASE =====================
	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db, otp)

	// ===================== API (JWT) =====================
	log.Println("[INFO] Setting up API group (JWT)...")
	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Mounting Forms routes...")
	routeDetails.FormsRoutes(api, db)

	log.Println("[INFO] Mounting Report routes...")
	routeDetails.ReportRoutes(api, db)
}
