package compare

import (
	"fmt"
	"io"

	"github.com/rgehrsitz/affordo/internal/output"
)

// Write renders compSet in the named format (console/table, csv or json)
func Write(w io.Writer, format string, compSet *ComparisonSet) error {
	var (
		text string
		err  error
	)
	switch output.NormalizeFormatName(format) {
	case "", "console":
		text = (&TableFormatter{}).Format(compSet)
	case "csv":
		text, err = (&CSVFormatter{}).Format(compSet)
	case "json":
		text, err = (&JSONFormatter{Pretty: true}).Format(compSet)
		text += "\n"
	default:
		return fmt.Errorf("%w %q for comparisons (use console, csv or json)", output.ErrUnknownFormat, format)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}
