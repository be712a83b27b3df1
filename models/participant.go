package models

import (
	"github.com/pocketbase/pocketbase/core"
)

// SeedLength is the length of the QR verification seed assigned to
// every participant at creation.
const SeedLength = 10

type Participant struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Mail        string `json:"mail"`
	Attended    bool   `json:"attended"`
	Description string `json:"description"`
	TicketID    string `json:"ticket"`
	PaymentID   string `json:"payment"`
	RandomSeed  string `json:"-"`
}

func ParticipantFromRecord(record *core.Record) Participant {
	return Participant{
		ID:          record.Id,
		FirstName:   record.GetString("first_name"),
		LastName:    record.GetString("last_name"),
		Mail:        record.GetString("mail"),
		Attended:    record.GetBool("attended"),
		Description: record.GetString("description"),
		TicketID:    record.GetString("ticket"),
		PaymentID:   record.GetString("payment"),
		RandomSeed:  record.GetString("random_seed"),
	}
}

func (p Participant) FullName() string {
	return p.FirstName + " " + p.LastName
}
