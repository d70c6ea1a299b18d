package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
)

const (
	Json OutputFormat = "json"
	Csv  OutputFormat = "csv"
)

type OutputFormat string

func (format OutputFormat) IsValid() bool {
	return format == Json || format == Csv
}

// PrintResult writes result in the requested format. CSV output requires a slice of structs with csv tags.
func PrintResult(out io.Writer, result interface{}, format OutputFormat) error {
	switch format {
	case Csv:
		return errorutils.CheckError(gocsv.Marshal(result, out))
	case Json, "":
		content, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errorutils.CheckError(err)
		}
		_, err = fmt.Fprintln(out, string(content))
		return errorutils.CheckError(err)
	}
	return errorutils.CheckErrorf("unsupported output format '%s' (valid formats: json, csv)", format)
}
