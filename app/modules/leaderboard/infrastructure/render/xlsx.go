package render

import (
	"fmt"
	"io"
	"strconv"

	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the leaderboard is written to.
const SheetName = "Leaderboard"

// WriteXLSX writes the leaderboard as a single-sheet workbook. Numeric cells
// are stored as numbers so the sheet can be re-sorted.
func WriteXLSX(w io.Writer, variant leaderboarddomain.Variant, labels []string, standings []leaderboarddomain.Standing) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	table := BuildTable(variant, labels, standings)
	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			// Column 1 is the team name; everything else is numeric.
			if j == 1 {
				cells[j] = v
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("row %d: non-numeric cell %q", i+1, v)
			}
			cells[j] = n
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
