// README: Trip service enforces the ownership invariant at the boundary of every operation.
package trip

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"trailbook/internal/places"
	"trailbook/internal/types"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateTripCommand struct {
	OwnerID   types.ID
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
}

type CreateEntryCommand struct {
	OwnerID       types.ID
	TripID        types.ID
	Title         string
	Content       string
	Date          time.Time
	LocationLabel string
	Country       string
	Coordinates   *types.Point
	MediaRefs     []string
	Category      Category
}

func (s *Service) CreateTrip(ctx context.Context, cmd CreateTripCommand) (types.ID, error) {
	if cmd.OwnerID == "" || strings.TrimSpace(cmd.Name) == "" {
		return "", ErrBadRequest
	}
	if cmd.StartDate != nil && cmd.EndDate != nil && cmd.EndDate.Before(*cmd.StartDate) {
		return "", ErrBadRequest
	}
	t := &Trip{
		ID:        types.ID(uuid.NewString()),
		OwnerID:   cmd.OwnerID,
		Name:      strings.TrimSpace(cmd.Name),
		StartDate: cmd.StartDate,
		EndDate:   cmd.EndDate,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateTrip(ctx, t); err != nil {
		return "", err
	}
	return t.ID, nil
}

// GetTrip loads a trip and enforces ownership: a trip owned by another user
// is ErrUnauthorized, never silently returned.
func (s *Service) GetTrip(ctx context.Context, userID, tripID types.ID) (*Trip, error) {
	t, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != userID {
		return nil, ErrUnauthorized
	}
	return t, nil
}

func (s *Service) ListTrips(ctx context.Context, userID types.ID, limit int) ([]Trip, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.store.ListTripsByOwner(ctx, userID, limit)
}

func (s *Service) DeleteTrip(ctx context.Context, userID, tripID types.ID) error {
	if _, err := s.GetTrip(ctx, userID, tripID); err != nil {
		return err
	}
	return s.store.DeleteTrip(ctx, tripID)
}

func (s *Service) CreateEntry(ctx context.Context, cmd CreateEntryCommand) (types.ID, error) {
	if cmd.OwnerID == "" || strings.TrimSpace(cmd.Title) == "" {
		return "", ErrBadRequest
	}
	if cmd.Category == "" {
		cmd.Category = CategoryJournal
	}
	if !ValidCategory(cmd.Category) {
		return "", ErrBadRequest
	}
	if cmd.Coordinates != nil && !places.IsValidCoordinates(cmd.Coordinates.Lat, cmd.Coordinates.Lng) {
		return "", ErrBadRequest
	}
	if cmd.TripID != "" {
		// Entries may only be attached to the caller's own trip.
		if _, err := s.GetTrip(ctx, cmd.OwnerID, cmd.TripID); err != nil {
			return "", err
		}
	}
	if cmd.Date.IsZero() {
		cmd.Date = time.Now()
	}
	if cmd.MediaRefs == nil {
		cmd.MediaRefs = []string{}
	}
	e := &Entry{
		ID:            types.ID(uuid.NewString()),
		OwnerID:       cmd.OwnerID,
		TripID:        cmd.TripID,
		Title:         strings.TrimSpace(cmd.Title),
		Content:       cmd.Content,
		Date:          cmd.Date,
		LocationLabel: cmd.LocationLabel,
		Country:       cmd.Country,
		Coordinates:   cmd.Coordinates,
		MediaRefs:     cmd.MediaRefs,
		Category:      cmd.Category,
		CreatedAt:     time.Now(),
	}
	if err := s.store.CreateEntry(ctx, e); err != nil {
		return "", err
	}
	return e.ID, nil
}

func (s *Service) GetEntry(ctx context.Context, userID, entryID types.ID) (*Entry, error) {
	e, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != userID {
		return nil, ErrUnauthorized
	}
	return e, nil
}

// ListTripEntries returns all entries of one trip in date order, after the
// trip's own ownership check.
func (s *Service) ListTripEntries(ctx context.Context, userID, tripID types.ID) ([]Entry, error) {
	if _, err := s.GetTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}
	return s.store.ListEntriesByTrip(ctx, tripID)
}

func (s *Service) ListRecentEntries(ctx context.Context, userID types.ID, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.store.ListEntriesByOwner(ctx, userID, limit)
}

func (s *Service) DeleteEntry(ctx context.Context, userID, entryID types.ID) error {
	if _, err := s.GetEntry(ctx, userID, entryID); err != nil {
		return err
	}
	return s.store.DeleteEntry(ctx, entryID)
}

func (s *Service) Profile(ctx context.Context, userID types.ID) (*UserProfile, error) {
	return s.store.GetProfile(ctx, userID)
}

func (s *Service) SaveProfile(ctx context.Context, p *UserProfile) error {
	if p.UserID == "" {
		return ErrBadRequest
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return s.store.UpsertProfile(ctx, p)
}
