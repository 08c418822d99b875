package service

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authHelper "formshub_backend/internals/features/users/auth/helper"
	authRepo "formshub_backend/internals/features/users/auth/repository"
	helper "formshub_backend/internals/helpers"
)

// ========================== FORGOT PASSWORD (minta OTP) ==========================
func RequestPasswordReset(db *gorm.DB, otp *OTPService, c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	input.Email = strings.TrimSpace(input.Email)

	// anti-enumeration: email tak terdaftar tetap dijawab sama
	if _, err := authRepo.FindUserByEmail(db, input.Email); err == nil {
		if err := otp.Request(input.Email); err != nil {
			return helper.JsonError(c, fiber.StatusTooManyRequests, err.Error())
		}
	}
	return helper.JsonOK(c, "Jika email terdaftar, kode OTP telah dikirim", nil)
}

// ========================== VERIFY OTP ==========================
func VerifyPasswordResetOTP(otp *OTPService, c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := otp.Verify(strings.TrimSpace(input.Email), strings.TrimSpace(input.Code)); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonOK(c, "Kode OTP valid", nil)
}

// ========================== RESET PASSWORD (setelah OTP verified) ==========================
func ResetPassword(db *gorm.DB, otp *OTPService, c *fiber.Ctx) error {
	var input struct {
		Email       string `json:"email"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	input.Email = strings.TrimSpace(input.Email)

	if err := authHelper.ValidateResetPassword(input.Email, input.NewPassword); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	if !otp.Consume(input.Email) {
		return helper.JsonError(c, fiber.StatusForbidden, "OTP belum diverifikasi")
	}

	user, err := authRepo.FindUserByEmail(db, input.Email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	hashed, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := authRepo.UpdateUserPassword(db, user.ID, hashed); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	// semua sesi lama tidak berlaku lagi
	_ = authRepo.RevokeAllRefreshTokens(db, user.ID)

	return helper.JsonUpdated(c, "Password reset successfully", nil)
}

// ========================== CHANGE PASSWORD (login required) ==========================
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}

	if err := authHelper.CheckPasswordHash(user.Password, input.CurrentPassword); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	}
	if len(input.NewPassword) < 8 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Password baru minimal 8 karakter")
	}

	newHash, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash new password")
	}
	if err := authRepo.UpdateUserPassword(db, userID, newHash); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonUpdated(c, "Password changed successfully", nil)
}
