package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"

	"saranalaya/config"
	"saranalaya/internal/status"
	"saranalaya/monitoring"
)

// AttendanceService validates scanned QR payloads and flips the
// one-way attended flag. The flag never goes back to false.
type AttendanceService struct {
	app   core.App
	redis *redis.Client
	cfg   *config.Config
}

func NewAttendanceService(app core.App, redisClient *redis.Client, cfg *config.Config) *AttendanceService {
	return &AttendanceService{app: app, redis: redisClient, cfg: cfg}
}

// seedMatches compares the presented seed with the stored one in
// constant time. Both values are attacker-controlled input from a
// scanned code.
func seedMatches(presented, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(stored)) == 1
}

// scanLockKey guards one participant against concurrent double scans.
func scanLockKey(participantID string) string {
	return fmt.Sprintf("attendance:lock:%s", participantID)
}

// MarkAttendance verifies a scanned participant id + seed and latches
// the attended flag. It returns the ticket title as confirmation text.
func (s *AttendanceService) MarkAttendance(ctx context.Context, participantID, seed string) (string, error) {
	if participantID == "" || seed == "" {
		monitoring.TrackAttendanceScan("not_recognised")
		return "", status.ErrNotRecognised
	}

	participant, err := s.app.FindRecordById("participants", participantID)
	if err != nil {
		monitoring.TrackAttendanceScan("not_recognised")
		return "", status.ErrNotRecognised
	}

	if !seedMatches(seed, participant.GetString("random_seed")) {
		monitoring.TrackAttendanceScan("fraud")
		return "", status.ErrSeedMismatch
	}

	if s.redis != nil {
		locked, err := s.redis.SetNX(ctx, scanLockKey(participantID), "1", s.cfg.ScanLockTTL).Result()
		if err == nil {
			if !locked {
				monitoring.TrackAttendanceScan("in_progress")
				return "", status.ErrScanInProgress
			}
			defer s.redis.Del(ctx, scanLockKey(participantID))
		}
		// A redis outage degrades to the reference behavior instead of
		// closing the door on everyone.
	}

	if participant.GetBool("attended") {
		monitoring.TrackAttendanceScan("already_attended")
		return "", status.ErrAlreadyAttended
	}

	participant.Set("attended", true)
	if err := s.app.Save(participant); err != nil {
		return "", err
	}

	ticket, err := s.app.FindRecordById("tickets", participant.GetString("ticket"))
	if err != nil {
		return "", err
	}

	monitoring.TrackAttendanceScan("success")

	return ticket.GetString("title"), nil
}
