package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	categoryRoute "formshub_backend/internals/features/forms/categories/route"
	formRoute "formshub_backend/internals/features/forms/forms/route"
	processRoute "formshub_backend/internals/features/forms/processes/route"
	submissionRoute "formshub_backend/internals/features/forms/submissions/route"
)

// FormsRoutes memasang seluruh fitur builder & pengisian di router ber-JWT
func FormsRoutes(api fiber.Router, db *gorm.DB) {
	categoryRoute.CategoryRoutes(api, db)
	formRoute.FormRoutes(api, db)
	processRoute.ProcessRoutes(api, db)
	submissionRoute.SubmissionRoutes(api, db)
}
