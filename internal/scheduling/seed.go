package scheduling

import (
	"context"
	"fmt"
	"time"
)

type demoBlock struct {
	title        string
	startH, endH int
	startM, endM int
	notes        string
}

// Listed in display order.
var demoBlocks = []demoBlock{
	{title: "Früh – Objekt A", startH: 7, startM: 15, endH: 11, endM: 15, notes: "Eingang & Flur"},
	{title: "Spät – Objekt B", startH: 14, startM: 55, endH: 18, endM: 55},
	{title: "Abend – Objekt C", startH: 19, startM: 0, endH: 21, endM: 0},
}

// SeedDemoBlocks creates three single-seat blocks on the calendar day of day
// in loc. They are inserted last-to-first so the listing shows them in order.
func SeedDemoBlocks(ctx context.Context, c *Controller, day time.Time, loc *time.Location) ([]Block, error) {
	if loc == nil {
		loc = time.Local
	}
	d := day.In(loc)
	at := func(h, m int) time.Time {
		return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, loc)
	}

	out := make([]Block, len(demoBlocks))
	for i := len(demoBlocks) - 1; i >= 0; i-- {
		db := demoBlocks[i]
		b, err := c.CreateBlock(ctx, CreateBlockInput{
			Title:    db.title,
			StartsAt: at(db.startH, db.startM),
			EndsAt:   at(db.endH, db.endM),
			Capacity: 1,
			Notes:    db.notes,
		})
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", db.title, err)
		}
		out[i] = b
	}
	return out, nil
}
