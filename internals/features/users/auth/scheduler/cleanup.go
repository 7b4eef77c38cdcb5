package scheduler

import (
	"context"
	"log"
	"time"

	authRepo "campushub_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler prunes expired blacklist entries once a day.
func StartBlacklistCleanupScheduler(tokens authRepo.TokenRepository) {
	go func() {
		for {
			log.Println("[CLEANUP] Pruning expired token blacklist entries...")

			removed, err := tokens.CleanupExpiredBlacklist(context.Background())
			if err != nil {
				log.Printf("[CLEANUP ERROR] blacklist prune failed: %v", err)
			} else if removed > 0 {
				log.Printf("[CLEANUP] %d expired tokens removed", removed)
			} else {
				log.Println("[CLEANUP] Nothing to remove")
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
