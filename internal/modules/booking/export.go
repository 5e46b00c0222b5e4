package booking

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"clinic/internal/domain"
)

const exportSheet = "Bookings"

var exportHeaders = []string{"ID", "Name", "Phone", "Date", "Time", "Service ID", "Status", "Created At"}

// Export writes the bookings matching q as an xlsx workbook to w.
func (s *Service) Export(ctx context.Context, q ListQuery, w io.Writer) (int, error) {
	q.Limit, q.Offset = 0, 0
	items, _, err := s.ListBookings(ctx, q)
	if err != nil {
		return 0, err
	}
	if err := writeWorkbook(w, items); err != nil {
		return 0, fmt.Errorf("write booking export: %w", err)
	}
	return len(items), nil
}

func writeWorkbook(w io.Writer, items []domain.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, h)
		_ = f.SetCellStyle(exportSheet, cell, cell, headerStyle)
	}
	_ = f.SetColWidth(exportSheet, "B", "B", 25)
	_ = f.SetColWidth(exportSheet, "C", "H", 16)

	for i, b := range items {
		row := i + 2
		values := []any{
			b.ID,
			b.Name,
			b.Phone,
			b.Date,
			b.Time,
			b.ServiceID,
			string(b.Status),
			b.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(exportSheet, cell, v)
		}
	}

	_, err = f.WriteTo(w)
	return err
}
