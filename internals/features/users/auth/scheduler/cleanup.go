package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	authRepo "formshub_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler menghapus token blacklist & refresh token
// kadaluarsa secara periodik
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		interval := 24 * time.Hour
		if val := os.Getenv("CLEANUP_INTERVAL_HOURS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				interval = time.Duration(parsed) * time.Hour
			}
		}

		for {
			log.Println("[CLEANUP] Menjalankan pembersihan token kadaluarsa...")

			if n, err := authRepo.CleanupExpiredBlacklist(db); err != nil {
				log.Printf("[CLEANUP ERROR] Gagal hapus blacklist: %v", err)
			} else if n > 0 {
				log.Printf("[CLEANUP] %d token blacklist kadaluarsa dihapus", n)
			}

			res := db.Exec(`DELETE FROM refresh_tokens WHERE expires_at <= ?`, time.Now().UTC())
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] Gagal hapus refresh token: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] %d refresh token kadaluarsa dihapus", res.RowsAffected)
			}

			time.Sleep(interval)
		}
	}()
}
