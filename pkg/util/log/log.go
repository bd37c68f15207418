package log

import (
	"bytes"
	"runtime"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
)

var defaultLog = NewStdoutLogger(logrus.InfoLevel, true)

// Discard is a logger implementation that just discards every log statement
var Discard Logger = &DiscardLogger{}

// GetInstance returns the Logger instance the cli commands write to
func GetInstance() Logger {
	return defaultLog
}

// SetInstance replaces the Logger instance the cli commands write to
func SetInstance(logger Logger) {
	defaultLog = logger
}

// PrintTable prints a table with header columns and string values
func PrintTable(s Logger, header []string, values [][]string) {
	buf := &bytes.Buffer{}

	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	if runtime.GOOS == "darwin" || runtime.GOOS == "linux" {
		colors := []tablewriter.Colors{}
		for range header {
			colors = append(colors, tablewriter.Color(tablewriter.FgGreenColor))
		}
		table.SetHeaderColor(colors...)
	}

	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: false, Top: false, Right: false, Bottom: false})
	table.AppendBulk(values)
	table.Render()

	s.WriteString(logrus.InfoLevel, "\n")
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		s.WriteString(logrus.InfoLevel, "  "+line+"\n")
	}
	s.WriteString(logrus.InfoLevel, "\n")
}
