package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QRHunt_Go/internal/clock"
	"github.com/osse101/QRHunt_Go/internal/database/memory"
	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/event"
	"github.com/osse101/QRHunt_Go/mocks"
)

var (
	dana  = domain.Identity{UserID: "dana", Email: "dana.scully@example.com"}
	epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
)

func TestEnsureProfile_CreatesOnFirstUse(t *testing.T) {
	store := memory.NewStore()
	bus := event.NewMemoryBus()
	var created []string
	bus.Subscribe(event.ProfileCreated, func(_ context.Context, evt event.Event) error {
		p, err := event.DecodePayload[domain.ProfileCreatedPayload](evt.Payload)
		require.NoError(t, err)
		created = append(created, p.UserID)
		return nil
	})
	svc := NewService(store, bus, clock.NewSimulated(epoch))
	ctx := context.Background()

	p, err := svc.EnsureProfile(ctx, dana, "  Dana  ")
	require.NoError(t, err)
	assert.Equal(t, "Dana", p.DisplayName)
	assert.Equal(t, dana.Email, p.Email)
	assert.Equal(t, epoch, p.CreatedAt)

	items, err := store.Read(ctx, dana, "dana")
	require.NoError(t, err, "collection created alongside profile")
	assert.Zero(t, items.Len())

	again, err := svc.EnsureProfile(ctx, dana, "Another Name")
	require.NoError(t, err)
	assert.Equal(t, "Dana", again.DisplayName)
	assert.Equal(t, []string{"dana"}, created)
}

func TestEnsureProfile_FallsBackToEmail(t *testing.T) {
	svc := NewService(memory.NewStore(), nil, nil)

	p, err := svc.EnsureProfile(context.Background(), dana, "")
	require.NoError(t, err)
	assert.Equal(t, "Dana Scully", p.DisplayName)
}

func TestEnsureProfile_Validation(t *testing.T) {
	tests := []struct {
		name   string
		caller domain.Identity
		input  string
	}{
		{"too short", dana, "Al"},
		{"too long", dana, "abcdefghijklmnopqrstuvwxyzabcde"},
		{"bad email", domain.Identity{UserID: "x", Email: "not-an-email"}, "Valid Name"},
		{"no name and no email", domain.Identity{UserID: "x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(memory.NewStore(), nil, nil).EnsureProfile(context.Background(), tt.caller, tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestEnsureProfile_LostCreateRaceReturnsWinner(t *testing.T) {
	profiles := mocks.NewMockProfile(t)
	winner := &domain.Profile{UserID: "dana", DisplayName: "Winner"}
	profiles.On("GetProfile", mock.Anything, dana, "dana").Return(nil, domain.ErrProfileNotFound).Once()
	profiles.On("CreateProfile", mock.Anything, dana, mock.AnythingOfType("domain.Profile")).Return(winner, false, nil).Once()

	bus := event.NewMemoryBus()
	bus.Subscribe(event.ProfileCreated, func(context.Context, event.Event) error {
		t.Error("profile.created must not fire for the losing device")
		return nil
	})

	p, err := NewService(profiles, bus, nil).EnsureProfile(context.Background(), dana, "Loser")
	require.NoError(t, err)
	assert.Equal(t, winner, p)
}

func TestEnsureProfile_StoreErrors(t *testing.T) {
	profiles := mocks.NewMockProfile(t)
	profiles.On("GetProfile", mock.Anything, dana, "dana").Return(nil, domain.ErrUnavailable).Once()

	_, err := NewService(profiles, nil, nil).EnsureProfile(context.Background(), dana, "Dana")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	profiles.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetProfile(t *testing.T) {
	svc := NewService(memory.NewStore(), nil, nil)
	ctx := context.Background()

	_, err := svc.GetProfile(ctx, dana)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = svc.EnsureProfile(ctx, dana, "Dana")
	require.NoError(t, err)

	p, err := svc.GetProfile(ctx, dana)
	require.NoError(t, err)
	assert.Equal(t, "Dana", p.DisplayName)

	_, err = svc.GetProfile(ctx, domain.Identity{})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
