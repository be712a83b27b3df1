// Package ticketpdf renders the entry tickets attached to the payment
// confirmation email: one page per participant, each carrying a QR code
// that the door scanner verifies against the participant's seed.
package ticketpdf

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const qrImageSize = 512

// Ticket is everything one participant page needs.
type Ticket struct {
	ParticipantID string
	Seed          string
	EventTitle    string
	EventDates    string
	TicketTitle   string
	Location      string
}

// Generator renders single-participant pages and payment-level merged
// documents. LogoPath may be empty, in which case the logo row is
// skipped (used in tests).
type Generator struct {
	LogoPath string
}

func New(logoPath string) *Generator {
	return &Generator{LogoPath: logoPath}
}

// QRPayload builds the scanned code content: the participant id and
// seed as two line segments, matching what the door scanner parses.
func QRPayload(participantID, seed string) string {
	return fmt.Sprintf("participant_id:%s\nseed:%s", participantID, seed)
}

// qrPNG encodes the payload as a PNG QR image. Error-correction stays
// at the lowest level so the seed fits in a small code.
func qrPNG(payload string) ([]byte, error) {
	code, err := qr.Encode(payload, qr.L, qr.Auto)
	if err != nil {
		return nil, err
	}

	code, err = barcode.Scale(code, qrImageSize, qrImageSize)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// RenderOne produces a single-page PDF ticket for one participant.
func (g *Generator) RenderOne(t Ticket) ([]byte, error) {
	qrBytes, err := qrPNG(QRPayload(t.ParticipantID, t.Seed))
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}

	cfg := config.NewBuilder().
		WithDimensions(210, 297).
		Build()

	m := maroto.New(cfg)

	logoCol := col.New(7)
	if g.LogoPath != "" {
		logoCol = image.NewFromFileCol(7, g.LogoPath, props.Rect{
			Center:  false,
			Percent: 60,
		})
	}

	m.AddRow(45,
		logoCol,
		image.NewFromBytesCol(5, qrBytes, extension.Png, props.Rect{
			Center:  true,
			Percent: 100,
		}),
	)

	m.AddRow(14,
		text.NewCol(12, t.EventTitle, props.Text{
			Size:  25,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(10,
		text.NewCol(12, t.EventDates, props.Text{Size: 18}),
	)

	m.AddRow(10,
		text.NewCol(12, t.TicketTitle, props.Text{Size: 18}),
	)

	m.AddRow(10,
		text.NewCol(12, t.Location, props.Text{Size: 18}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf generate: %w", err)
	}

	return doc.GetBytes(), nil
}

// RenderMerged produces one multi-page document with one page per
// ticket, concatenated in input order.
func (g *Generator) RenderMerged(tickets []Ticket) ([]byte, error) {
	if len(tickets) == 0 {
		return nil, fmt.Errorf("render merged: no tickets")
	}

	pages := make([][]byte, 0, len(tickets))
	for _, t := range tickets {
		page, err := g.RenderOne(t)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	if len(pages) == 1 {
		return pages[0], nil
	}

	return mergePDFs(pages)
}

func mergePDFs(docs [][]byte) ([]byte, error) {
	readers := make([]io.ReadSeeker, 0, len(docs))
	for _, doc := range docs {
		readers = append(readers, bytes.NewReader(doc))
	}

	var merged bytes.Buffer
	if err := api.MergeRaw(readers, &merged, false, nil); err != nil {
		return nil, fmt.Errorf("pdf merge: %w", err)
	}

	return merged.Bytes(), nil
}
