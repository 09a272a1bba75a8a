package writer

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

// Layout controls how a line is laid out in the log file
type Layout int

const (
	// LayoutBare writes the message only
	LayoutBare Layout = iota
	// LayoutLeveled prefixes the message with a padded level name
	LayoutLeveled
	// LayoutTimestamped prefixes the message with a timestamp and a padded level name
	LayoutTimestamped
)

const timestampLayout = "2006-01-02 15:04:05,000"

// LayoutFor returns the log layout used for a verbosity tier
func LayoutFor(verbosity int) Layout {
	switch {
	case verbosity <= 0:
		return LayoutBare
	case verbosity == 1:
		return LayoutLeveled
	default:
		return LayoutTimestamped
	}
}

func (l Layout) String() string {
	switch l {
	case LayoutBare:
		return "bare"
	case LayoutLeveled:
		return "leveled"
	case LayoutTimestamped:
		return "timestamped"
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// Formatter renders logrus entries as plain text lines
type Formatter struct {
	Layout Layout
}

// Format implements logrus.Formatter
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	builder := strings.Builder{}
	level := strings.ToUpper(entry.Level.String())
	switch f.Layout {
	case LayoutLeveled:
		builder.WriteString(fmt.Sprintf("%-8s ", level))
	case LayoutTimestamped:
		builder.WriteString(fmt.Sprintf("%-15s %-8s ", entry.Time.Format(timestampLayout), level))
	}
	builder.WriteString(entry.Message)
	builder.WriteByte('\n')
	return []byte(builder.String()), nil
}

var printer = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Pretty returns a human readable multi-line rendering of value
func Pretty(value interface{}) string {
	return strings.TrimRight(printer.Sdump(value), "\n")
}
