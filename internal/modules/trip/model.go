// README: Trip/Entry/UserProfile domain records and error sentinels.
package trip

import (
	"errors"
	"time"

	"trailbook/internal/types"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("record owned by another user")
	ErrBadRequest   = errors.New("bad request")
)

// Category tags what kind of record an entry is.
type Category string

const (
	CategoryJournal  Category = "journal"
	CategoryPhoto    Category = "photo"
	CategoryMap      Category = "map"
	CategoryArtifact Category = "artifact"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryJournal, CategoryPhoto, CategoryMap, CategoryArtifact:
		return true
	}
	return false
}

// Trip groups entries under one journey. EntryIDs is ordered by entry date.
type Trip struct {
	ID        types.ID   `json:"id"`
	OwnerID   types.ID   `json:"ownerId"`
	Name      string     `json:"name"`
	EntryIDs  []types.ID `json:"entryIds"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Entry is a single journal record: text, media, and an optional location.
type Entry struct {
	ID            types.ID     `json:"id"`
	OwnerID       types.ID     `json:"ownerId"`
	TripID        types.ID     `json:"tripId,omitempty"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	Date          time.Time    `json:"date"`
	LocationLabel string       `json:"locationLabel"`
	Country       string       `json:"country"`
	Coordinates   *types.Point `json:"coordinates,omitempty"`
	MediaRefs     []string     `json:"mediaRefs"`
	Category      Category     `json:"category"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// ProfileStats are aggregates derived from stored records.
type ProfileStats struct {
	TotalTrips       int      `json:"totalTrips"`
	TotalEntries     int      `json:"totalEntries"`
	CountriesVisited []string `json:"countriesVisited"`
}

// UserProfile carries user preferences and aggregate stats.
type UserProfile struct {
	UserID      types.ID     `json:"userId"`
	DisplayName string       `json:"displayName"`
	HomeCountry string       `json:"homeCountry"`
	Interests   []string     `json:"interests"`
	Stats       ProfileStats `json:"stats"`
}
