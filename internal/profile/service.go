// Package profile manages the member profile created on first sign-in.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/QRHunt_Go/internal/clock"
	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/event"
	"github.com/osse101/QRHunt_Go/internal/logger"
	"github.com/osse101/QRHunt_Go/internal/repository"
)

// Service defines profile operations for the signed-in caller.
type Service interface {
	// EnsureProfile returns the caller's profile, creating it on first use.
	// The store creates the empty collection in the same step. An empty name
	// falls back to the email.
	EnsureProfile(ctx context.Context, caller domain.Identity, name string) (*domain.Profile, error)

	// GetProfile returns domain.ErrProfileNotFound when the caller has none.
	GetProfile(ctx context.Context, caller domain.Identity) (*domain.Profile, error)
}

type newProfile struct {
	DisplayName string `validate:"required,min=3,max=30"`
	Email       string `validate:"omitempty,email"`
}

type service struct {
	profiles repository.Profile
	bus      event.Bus
	clock    clock.Clock
	validate *validator.Validate
}

// NewService creates a profile service. bus may be nil.
func NewService(profiles repository.Profile, bus event.Bus, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.NewReal()
	}
	return &service{
		profiles: profiles,
		bus:      bus,
		clock:    clk,
		validate: validator.New(),
	}
}

func (s *service) GetProfile(ctx context.Context, caller domain.Identity) (*domain.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, caller, caller.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgGetProfileFmt, err)
	}
	return p, nil
}

func (s *service) EnsureProfile(ctx context.Context, caller domain.Identity, name string) (*domain.Profile, error) {
	log := logger.FromContext(ctx)

	existing, err := s.GetProfile(ctx, caller)
	if err == nil {
		log.Debug(LogMsgProfileExisting, "user_id", caller.UserID)
		return existing, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	input := newProfile{DisplayName: NormalizeName(name), Email: caller.Email}
	if input.DisplayName == "" {
		input.DisplayName = NameFromEmail(caller.Email)
		log.Debug(LogMsgNameFallback, "user_id", caller.UserID, "display_name", input.DisplayName)
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidProfileFmt, domain.ErrInvalidInput, err)
	}

	p, created, err := s.profiles.CreateProfile(ctx, caller, domain.Profile{
		UserID:      caller.UserID,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		CreatedAt:   s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreateProfileFmt, err)
	}
	if !created {
		// Another device created it between our read and write.
		return p, nil
	}

	log.Info(LogMsgProfileCreated, "user_id", caller.UserID, "display_name", p.DisplayName)
	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewProfileCreatedEvent(caller.UserID)); err != nil {
			log.Warn(LogMsgPublishFailed, "error", err)
		}
	}
	return p, nil
}
