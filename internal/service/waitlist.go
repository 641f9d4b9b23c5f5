package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"clutchly/internal/constants"
	"clutchly/internal/domain"

	"github.com/rs/zerolog"
)

const defaultWaitlistSource = "landing_page"

type WaitlistService struct {
	store  WaitlistStore
	logger zerolog.Logger
}

func NewWaitlistService(store WaitlistStore, logger zerolog.Logger) *WaitlistService {
	return &WaitlistService{store: store, logger: logger}
}

// Join adds email to the waitlist. created is false when it was already there.
func (s *WaitlistService) Join(ctx context.Context, email, source string) (created bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return false, fmt.Errorf("invalid email address: %w", domain.ErrInvalidArgument)
	}
	if source == "" {
		source = defaultWaitlistSource
	}

	created, err = s.store.Add(ctx, &domain.WaitlistEntry{
		Email:  strings.ToLower(addr.Address),
		Source: source,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to join waitlist")
		return false, err
	}

	s.logger.Info().Bool("created", created).Str("source", source).Msg("waitlist join")
	return created, nil
}
