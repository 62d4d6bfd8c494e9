// Package xlsx exports rendered exercise runs as an Excel workbook, one
// sheet per run.
package xlsx

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

type Sheet struct {
	ID    string
	Title string
	Lines []string
}

// SheetName is the worksheet name used for an exercise id.
func SheetName(id string) string { return "Task " + id }

// Write renders sheets into a workbook and writes it to w. Row 1 holds the
// id and title; each following row holds one line, shifted one column right
// per leading tab so nested output stays readable.
func Write(w io.Writer, sheets []Sheet) error {
	if len(sheets) == 0 {
		return errors.New("xlsx: no sheets to write")
	}
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "xlsx: header style")
	}

	for i, sh := range sheets {
		name := SheetName(sh.ID)
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), name)
		} else {
			_, err = f.NewSheet(name)
		}
		if err != nil {
			return errors.Wrapf(err, "xlsx: sheet %s", name)
		}
		if err := writeSheet(f, name, sh, bold); err != nil {
			return errors.Wrapf(err, "xlsx: sheet %s", name)
		}
	}
	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "xlsx: write workbook")
	}
	return nil
}

func writeSheet(f *excelize.File, name string, sh Sheet, headerStyle int) error {
	if err := f.SetCellValue(name, "A1", sh.ID); err != nil {
		return err
	}
	if err := f.SetCellValue(name, "B1", sh.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", "B1", headerStyle); err != nil {
		return err
	}
	for i, line := range sh.Lines {
		text := strings.TrimLeft(line, "\t")
		depth := len(line) - len(text)
		cell, err := excelize.CoordinatesToCellName(depth+1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, text); err != nil {
			return err
		}
	}
	return nil
}
