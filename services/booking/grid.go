package booking

import (
	"context"
	"time"

	"courtside/models"

	"go.uber.org/zap"
)

// GridCell is one renderable cell of the booking table.
type GridCell struct {
	Slot  models.TimeSlot  `json:"slot"`
	State models.SlotState `json:"state"`
	Price int              `json:"price"`
}

// CourtRow is one court's row of cells.
type CourtRow struct {
	CourtID   int        `json:"courtId"`
	CourtName string     `json:"courtName"`
	Cells     []GridCell `json:"cells"`
}

// BookingGrid is the fully classified time grid for one (group, date) pair,
// with the caller's selection overlaid and its running total.
type BookingGrid struct {
	CourtGroupID string            `json:"courtGroupId"`
	GroupName    string            `json:"groupName"`
	Date         string            `json:"date"`
	Slots        []models.TimeSlot `json:"slots"`
	Courts       []CourtRow        `json:"courts"`
	TotalPrice   int               `json:"totalPrice"`
}

// DefaultGridService implements GridService against the remote court API.
type DefaultGridService struct {
	API    CourtAPI
	Logger *zap.Logger
}

// BuildGrid loads the venue and its per-date snapshot, generates the slot
// sequence from the venue's operating hours and classifies every cell. A
// snapshot whose echoed scope differs from the request is discarded so a fast
// date-flip can never render stale data.
func (s *DefaultGridService) BuildGrid(ctx context.Context, courtGroupID, date string, session *SelectionSession, now time.Time) (*BookingGrid, error) {
	date = models.NormalizeDate(date)

	group, err := s.API.GetCourtGroup(ctx, courtGroupID)
	if err != nil {
		return nil, &FetchError{Op: "court group", Err: err}
	}
	snapshot, err := s.API.FetchBookingData(ctx, courtGroupID, date)
	if err != nil {
		return nil, &FetchError{Op: "booking data", Err: err}
	}
	if snapshot.CourtGroupID != courtGroupID || snapshot.Date != date {
		return nil, &FetchError{Op: "booking data", Err: ErrStaleSnapshot}
	}

	var selected []models.SelectedSlot
	if session != nil && session.CourtGroupID == courtGroupID && session.Date == date {
		selected = session.Slots
	}

	slots := GenerateTimeSlots(group.OpenTime, group.CloseTime)
	grid := &BookingGrid{
		CourtGroupID: courtGroupID,
		GroupName:    group.Name,
		Date:         date,
		Slots:        slots,
	}

	for _, court := range snapshot.Courts {
		if err := ValidateTiers(court.Prices); err != nil {
			s.Logger.Warn("court has a broken price table",
				zap.Int("courtId", court.ID), zap.Error(err))
		}
		row := CourtRow{CourtID: court.ID, CourtName: court.Name}
		for _, slot := range slots {
			row.Cells = append(row.Cells, GridCell{
				Slot:  slot,
				State: Classify(slot, court.ID, court.Bookings, selected, date, now),
				Price: PriceByTime(court.Prices, slot.Start),
			})
		}
		grid.Courts = append(grid.Courts, row)
	}

	grid.TotalPrice = CalculateTotal(selected, snapshot.Courts)
	return grid, nil
}
