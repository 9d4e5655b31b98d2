package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestXLSX_RoundTrip(t *testing.T) {
	headers := []string{"store", "square_footage", "predicted_continuous", "recommended_staff"}
	rows := [][]string{
		{"Downtown", "1200", "3.289", "4"},
		{"Airport", "800", "2.599", "3"},
	}

	data, err := XLSX(headers, rows)
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
	for i, h := range headers {
		if got[0][i] != h {
			t.Errorf("header %d = %q, want %q", i, got[0][i], h)
		}
	}
	if got[1][0] != "Downtown" {
		t.Errorf("first data cell = %q, want Downtown", got[1][0])
	}
	if got[2][3] != "3" {
		t.Errorf("recommended staff cell = %q, want 3", got[2][3])
	}
}

func TestXLSX_NaNStaysText(t *testing.T) {
	data, err := XLSX([]string{"a"}, [][]string{{"NaN"}})
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	val, err := f.GetCellValue(sheetName, "A2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if val != "NaN" {
		t.Errorf("A2 = %q, want NaN", val)
	}
}

func TestXLSX_EmptyRows(t *testing.T) {
	data, err := XLSX([]string{"a", "b"}, nil)
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected a non-empty workbook")
	}
}
