package order

import (
	"fmt"
	"io"
	"strings"

	"roomservice/models"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Orders"

var exportHeader = []any{
	"Order ID", "Created", "Location", "QR Label", "Room", "Guest", "Items", "Note", "Status", "Total",
}

func (s *DefaultOrderService) ExportOrders(w io.Writer, filter models.OrderFilter) error {
	orders, err := s.ListOrders(filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}

	loc := s.Pricing.Location()
	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			o.ID,
			o.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			o.Location,
			o.QRCodeLabel,
			o.RoomNumber,
			o.OrderUserName,
			itemSummary(o.Items),
			o.OrderNote,
			o.Status,
			o.TotalPrice,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(exportSheet, "A", "J", 18); err != nil {
		return err
	}
	return f.Write(w)
}

func itemSummary(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	}
	return strings.Join(parts, ", ")
}
