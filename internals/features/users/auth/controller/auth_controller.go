package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"formshub_backend/internals/features/users/auth/service"
	models "formshub_backend/internals/features/users/user/model"
	helper "formshub_backend/internals/helpers"
)

var validateAuth = validator.New()

type AuthController struct {
	DB  *gorm.DB
	OTP *service.OTPService
}

func NewAuthController(db *gorm.DB, otp *service.OTPService) *AuthController {
	return &AuthController{DB: db, OTP: otp}
}

/* ===================== Credential flow ===================== */

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return service.LoginGoogle(ac.DB, c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	return service.RefreshToken(ac.DB, c)
}

func (ac *AuthController) RevokeAllSessions(c *fiber.Ctx) error {
	return service.RevokeAllSessions(ac.DB, c)
}

/* ===================== Password flow ===================== */

func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	return service.RequestPasswordReset(ac.DB, ac.OTP, c)
}

func (ac *AuthController) VerifyOTP(c *fiber.Ctx) error {
	return service.VerifyPasswordResetOTP(ac.OTP, c)
}

func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	return service.ResetPassword(ac.DB, ac.OTP, c)
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	return service.ChangePassword(ac.DB, c)
}

/* ===================== Profile ===================== */

func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user models.UserModel
	if err := ac.DB.WithContext(c.Context()).
		First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	return helper.JsonOK(c, "Profil user", fiber.Map{
		"id":             user.ID,
		"user_name":      user.UserName,
		"email":          user.Email,
		"role":           user.Role,
		"phone":          user.Phone,
		"gender":         user.Gender,
		"address":        user.Address,
		"email_verified": user.EmailVerified,
		"created_at":     user.CreatedAt,
	})
}

func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req struct {
		UserName *string `json:"user_name" validate:"omitempty,min=3,max=50"`
		Phone    *string `json:"phone" validate:"omitempty,max=20"`
		Gender   *string `json:"gender" validate:"omitempty,oneof=M F O"`
		Address  *string `json:"address"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validateAuth.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user models.UserModel
	if err := ac.DB.WithContext(c.Context()).
		First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	if req.UserName != nil {
		user.UserName = *req.UserName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.Address != nil {
		user.Address = req.Address
	}

	if err := ac.DB.WithContext(c.Context()).Save(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui profil")
	}
	return helper.JsonUpdated(c, "Profil berhasil diperbarui", fiber.Map{
		"id":        user.ID,
		"user_name": user.UserName,
	})
}
