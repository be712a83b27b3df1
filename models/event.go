package models

import (
	"time"

	"github.com/pocketbase/pocketbase/core"
)

type Event struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	MaxParticipants    int       `json:"max_participants"`
	LocationShort      string    `json:"location_short"`
	LocationLong       string    `json:"location_long"`
	GoogleMapsEmbedURL string    `json:"google_maps_embed_url"`
	EnableSelling      bool      `json:"enable_selling"`
}

func EventFromRecord(record *core.Record) Event {
	return Event{
		ID:                 record.Id,
		Title:              record.GetString("title"),
		Description:        record.GetString("description"),
		StartDate:          record.GetDateTime("start_date").Time(),
		EndDate:            record.GetDateTime("end_date").Time(),
		MaxParticipants:    int(record.GetInt("max_participants")),
		LocationShort:      record.GetString("location_short"),
		LocationLong:       record.GetString("location_long"),
		GoogleMapsEmbedURL: record.GetString("google_maps_embed_url"),
		EnableSelling:      record.GetBool("enable_selling"),
	}
}

func (e Event) IsInFuture() bool {
	return time.Now().Before(e.StartDate)
}

func (e Event) IsSameDay() bool {
	return e.StartDate.Format("02/01/2006") == e.EndDate.Format("02/01/2006")
}

// FormatDateRange renders the printable date range for tickets and
// emails. Single-day events repeat only the closing time.
func (e Event) FormatDateRange() string {
	const dateTime = "02 Jan 2006 15:04"
	const timeOnly = "15:04"

	if e.IsSameDay() {
		return e.StartDate.Format(dateTime) + " - " + e.EndDate.Format(timeOnly)
	}
	return e.StartDate.Format(dateTime) + " - " + e.EndDate.Format(dateTime)
}
