package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Satu kebijakan visibility/ownership untuk semua resource
// (category/form/process/session) — jangan duplikasi cek per endpoint.

// CanView: resource publik boleh dilihat siapa pun; selain itu hanya
// owner atau admin.
func CanView(actorID, ownerID uuid.UUID, isPublic, isAdmin bool) bool {
	if isPublic {
		return true
	}
	return isAdmin || actorID == ownerID
}

// CanModify: mutasi hanya untuk owner atau admin, publik atau tidak.
func CanModify(actorID, ownerID uuid.UUID, isAdmin bool) bool {
	return isAdmin || actorID == ownerID
}

// EnsureCanSubmit: guard submit process. Ditolak hanya bila process
// private DAN actor bukan creator DAN actor bukan admin. Dicek sebelum
// validasi jawaban maupun persist apa pun.
func EnsureCanSubmit(actorID, ownerID uuid.UUID, isPublic, isAdmin bool) error {
	if CanView(actorID, ownerID, isPublic, isAdmin) {
		return nil
	}
	return fiber.NewError(fiber.StatusForbidden, "Anda tidak punya akses untuk mengisi process ini")
}
