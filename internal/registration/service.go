package registration

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Logger is the subset of logging used by the service.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Service runs the claim-and-register workflow on top of a Repository.
type Service struct {
	repo Repository
	log  Logger
}

// NewService creates a registration service.
func NewService(repo Repository, log Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ClaimAndRegister validates and claims an entry code for userID, then
// records device ownership.
//
// Returns the device serial on success. Returns ErrInvalidCode for a
// malformed code (no store access happens) and ErrKeyNotClaimable when
// the code is unknown, expired, or already claimed.
//
// Ownership insertion is first-claimant-wins: if another user already
// owns the serial the claim still succeeds but the skipped registration
// is logged as a warning, matching the vendor server's behaviour.
func (s *Service) ClaimAndRegister(ctx context.Context, code, userID string) (string, error) {
	if err := ValidateCode(code); err != nil {
		return "", err
	}
	normalized := NormalizeCode(code)

	serial, err := s.repo.Claim(ctx, normalized, userID)
	if err != nil {
		if errors.Is(err, ErrKeyNotClaimable) {
			s.logRejection(ctx, normalized)
		}
		return "", err
	}
	s.log.Info("claimed entry key", "code", normalized, "serial", serial, "user_id", userID)

	inserted, err := s.repo.Register(ctx, userID, serial)
	if err != nil {
		return "", fmt.Errorf("registering claimed device: %w", err)
	}
	if !inserted {
		s.log.Warn("device already registered, keeping existing owner", "serial", serial)
		return serial, nil
	}
	s.log.Info("registered device", "serial", serial, "user_id", userID)

	return serial, nil
}

// Devices returns the user's registered devices, newest first.
func (s *Service) Devices(ctx context.Context, userID string) ([]DeviceOwnership, error) {
	return s.repo.ListForUser(ctx, userID)
}

// Remove deletes a user's ownership of a serial, reporting whether a row
// was removed.
func (s *Service) Remove(ctx context.Context, userID, serial string) (bool, error) {
	removed, err := s.repo.Delete(ctx, userID, serial)
	if err != nil {
		return false, err
	}
	if removed {
		s.log.Info("deleted device ownership", "serial", serial, "user_id", userID)
	} else {
		s.log.Warn("device not found for user", "serial", serial, "user_id", userID)
	}
	return removed, nil
}

// logRejection records which of the collapsed not-claimable cases applied.
// The distinction is never surfaced to the caller, only logged.
func (s *Service) logRejection(ctx context.Context, code string) {
	key, err := s.repo.GetKey(ctx, code)
	switch {
	case err != nil:
		s.log.Warn("entry key not claimable", "code", code)
	case key == nil:
		s.log.Warn("entry key not found", "code", code)
	case key.ClaimedBy != nil:
		s.log.Warn("entry key already claimed", "code", code)
	case key.ExpiresAt.Before(time.Now()):
		s.log.Warn("entry key expired", "code", code)
	default:
		s.log.Warn("entry key not claimable", "code", code)
	}
}
