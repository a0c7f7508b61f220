package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xbaseio/dbf"
)

var (
	format string
	output string
)

// recordsCmd represents the records command
var recordsCmd = &cobra.Command{
	Use:   "records <file>",
	Short: "Dump live records as JSON lines or CSV",
	Long: `records streams every live record to the output, one JSON object per
line or one CSV row, keyed by column name. Deleted records are
dropped. Dates render as YYYY-MM-DD and unknown logicals as null in
JSON and ? in CSV.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInput(args[0])
		if err != nil {
			return err
		}
		defer in.Close()

		r, err := dbf.NewReader(in, encoding)
		if err != nil {
			return err
		}
		out, err := openOutput(output)
		if err != nil {
			return err
		}

		var n int
		switch format {
		case "json":
			n, err = dumpJSON(r, out, trim)
		case "csv":
			n, err = dumpCSV(r, out, trim)
		default:
			err = fmt.Errorf("unknown format %q, want json or csv", format)
		}
		if err != nil {
			out.Close()
			return err
		}
		log.WithFields(logrus.Fields{"records": n, "format": format}).Debug("dump complete")
		return out.Close()
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)
	recordsCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or csv")
	recordsCmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
}

// dumpJSON writes one JSON object per record, keyed by column name.
func dumpJSON(r *dbf.Reader, out io.Writer, trim bool) (int, error) {
	enc := json.NewEncoder(out)
	n := 0
	for {
		record, err := r.ReadMap()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		for k, v := range record {
			record[k] = jsonCell(v, trim)
		}
		if err := enc.Encode(record); err != nil {
			return n, err
		}
		n++
	}
}

// jsonCell rewrites cells whose default JSON form is unhelpful: a date is a
// day, not an RFC 3339 timestamp.
func jsonCell(v any, trim bool) any {
	switch cell := v.(type) {
	case time.Time:
		return cell.Format("2006-01-02")
	case string:
		if trim {
			return strings.TrimRight(cell, " ")
		}
	}
	return v
}

// dumpCSV writes a header row of column names followed by one row per record.
func dumpCSV(r *dbf.Reader, out io.Writer, trim bool) (int, error) {
	w := csv.NewWriter(out)
	names := r.Names()
	if err := w.Write(names); err != nil {
		return 0, err
	}
	row := make([]string, len(names))
	n := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			w.Flush()
			return n, w.Error()
		}
		if err != nil {
			return n, err
		}
		for i, v := range record {
			row[i] = cellString(v, trim)
		}
		if err := w.Write(row); err != nil {
			return n, err
		}
		n++
	}
}

// cellString renders one cell as text for CSV output.
func cellString(v any, trim bool) string {
	switch cell := v.(type) {
	case string:
		if trim {
			return strings.TrimRight(cell, " ")
		}
		return cell
	case int64:
		return strconv.FormatInt(cell, 10)
	case decimal.Decimal:
		return cell.String()
	case time.Time:
		return cell.Format("2006-01-02")
	case dbf.Logical:
		return cell.String()
	}
	return fmt.Sprint(v)
}
