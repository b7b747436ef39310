// Package export writes the classified county table as a spreadsheet or
// CSV file.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/edu-choropleth/internal/choropleth"
)

// Header is the column layout shared by both formats.
var Header = []string{
	"fips", "area_name", "state", "bachelors_or_higher",
	"bucket", "color", "bucket_low", "bucket_high", "plotted",
}

// WriteXLSX writes a "counties" sheet with one row per record and a
// "legend" sheet with one row per bucket.
func WriteXLSX(w io.Writer, m *choropleth.Map) error {
	f := xlsx.NewFile()

	counties, err := f.AddSheet("counties")
	if err != nil {
		return eris.Wrap(err, "export: add counties sheet")
	}
	addStringRow(counties, Header)
	for _, r := range m.Rows() {
		row := counties.AddRow()
		row.AddCell().SetInt(r.Record.Key)
		row.AddCell().SetString(r.Record.RegionName)
		row.AddCell().SetString(r.Record.RegionGroup)
		row.AddCell().SetFloat(r.Record.Value)
		row.AddCell().SetInt(r.Bucket)
		row.AddCell().SetString(r.Color)
		row.AddCell().SetFloat(r.Interval.Low)
		row.AddCell().SetFloat(r.Interval.High)
		row.AddCell().SetBool(r.Plotted)
	}

	legend, err := f.AddSheet("legend")
	if err != nil {
		return eris.Wrap(err, "export: add legend sheet")
	}
	addStringRow(legend, []string{"bucket", "color", "low", "high", "closed", "counties"})
	counts := m.Summary().BucketCounts
	for i, iv := range m.Classifier.Intervals() {
		row := legend.AddRow()
		row.AddCell().SetInt(i)
		row.AddCell().SetString(m.Classifier.Colors()[i])
		row.AddCell().SetFloat(iv.Low)
		row.AddCell().SetFloat(iv.High)
		row.AddCell().SetBool(iv.Closed)
		row.AddCell().SetInt(counts[i])
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}

// WriteCSV writes one row per record with a header row.
func WriteCSV(w io.Writer, m *choropleth.Map) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, r := range m.Rows() {
		rec := []string{
			strconv.Itoa(r.Record.Key),
			r.Record.RegionName,
			r.Record.RegionGroup,
			formatFloat(r.Record.Value),
			strconv.Itoa(r.Bucket),
			r.Color,
			formatFloat(r.Interval.Low),
			formatFloat(r.Interval.High),
			strconv.FormatBool(r.Plotted),
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

func addStringRow(sheet *xlsx.Sheet, cells []string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().SetString(c)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
