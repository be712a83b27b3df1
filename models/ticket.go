package models

import (
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

type Ticket struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	MaxParticipants int             `json:"max_participants"`
	EventID         string          `json:"event"`
}

func TicketFromRecord(record *core.Record) Ticket {
	return Ticket{
		ID:              record.Id,
		Title:           record.GetString("title"),
		Description:     record.GetString("description"),
		Price:           decimal.NewFromFloat(record.GetFloat("price")),
		MaxParticipants: int(record.GetInt("max_participants")),
		EventID:         record.GetString("event"),
	}
}
