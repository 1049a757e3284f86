// file: internals/features/users/auth/scheduler/cleanup.go
package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler menjalankan pembersihan rutin:
// - token_blacklist yang sudah kedaluwarsa
// - refresh_tokens yang sudah kedaluwarsa
// Jadwal: tiap jam pada menit ke-10.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := c.AddFunc("10 * * * *", func() {
		if err := repository.CleanupExpiredBlacklist(db); err != nil {
			log.Printf("[SCHEDULER] gagal membersihkan token blacklist: %v", err)
		}

		if n, err := repository.CleanupExpiredRefreshTokens(db); err != nil {
			log.Printf("[SCHEDULER] gagal membersihkan refresh token: %v", err)
		} else if n > 0 {
			log.Printf("[SCHEDULER] %d refresh token kedaluwarsa dihapus", n)
		}
	})
	if err != nil {
		log.Printf("[SCHEDULER] gagal mendaftarkan cleanup auth: %v", err)
		return
	}

	c.Start()
	log.Println("[SCHEDULER] Cleanup token blacklist & refresh token aktif (tiap jam)")
}
