package core

import (
	"math"
	"strconv"
	"strings"

	"staffcast/internal/csvio"
	"staffcast/internal/engine"
)

// Columns appended to every processed row.
const (
	ColContinuous  = "predicted_continuous"
	ColRecommended = "recommended_staff"
)

// DownloadFileName is the attachment name offered for CSV downloads.
const DownloadFileName = "staff_recommendations.csv"

// Header aliases accepted for the two input fields, probed in priority
// order with exact, case-sensitive matching. Any other headers pass through
// to the output untouched.
var (
	areaAliases     = []string{"square_footage", "area", "sqft", "SQUARE_FOOTAGE"}
	footfallAliases = []string{"mall_footfall", "footfall", "mallTraffic", "MALL_FOOTFALL"}
)

// ResultSet is the augmented batch output: the original headers and rows
// plus the two computed columns, in input order.
type ResultSet struct {
	Headers []string
	Rows    [][]string
}

// lookupAlias returns the row value for the first alias present in the
// header row, or "" when none of the aliases match.
func lookupAlias(doc csvio.Document, row []string, aliases []string) string {
	for _, name := range aliases {
		if i := doc.Index(name); i >= 0 {
			return row[i]
		}
	}
	return ""
}

// coerceNumeric applies the batch coercion rule: empty (or missing) values
// become 0, anything non-numeric becomes NaN and flows through the formula.
// Batch rows are deliberately not validated like the interactive path is;
// a bad cell flags the row instead of failing the whole file.
func coerceNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// augment runs the recommendation engine over every row of a document and
// returns the result set plus the count of rows whose inputs were
// non-numeric. All rows use the same rule/min/max; no row is dropped and
// output order matches input order.
func augment(doc csvio.Document, rule engine.RoundRule, minStaff int, maxStaff *int) (ResultSet, int) {
	headers := make([]string, 0, len(doc.Headers)+2)
	headers = append(headers, doc.Headers...)
	headers = append(headers, ColContinuous, ColRecommended)

	rows := make([][]string, 0, len(doc.Rows))
	flagged := 0

	for _, row := range doc.Rows {
		area := coerceNumeric(lookupAlias(doc, row, areaAliases))
		footfall := coerceNumeric(lookupAlias(doc, row, footfallAliases))

		continuous := engine.PredictContinuous(area, footfall)

		var contCell, staffCell string
		if math.IsNaN(continuous) {
			// Non-numeric input propagates as NaN rather than dropping or
			// failing the row; the flagged count makes it visible upstream.
			contCell, staffCell = "NaN", "NaN"
			flagged++
		} else {
			contCell = strconv.FormatFloat(continuous, 'f', 3, 64)
			staffCell = strconv.Itoa(engine.ApplyRounding(continuous, rule, minStaff, maxStaff))
		}

		out := make([]string, 0, len(row)+2)
		out = append(out, row...)
		out = append(out, contCell, staffCell)
		rows = append(rows, out)
	}

	return ResultSet{Headers: headers, Rows: rows}, flagged
}
