package sheet

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrNoValidData is returned when a statistic is requested on an empty RecordSet.
var ErrNoValidData = eris.New("sheet: no valid coordinates")

// SchemaError reports a sheet whose header lacks required columns.
type SchemaError struct {
	Sheet   string
	Missing []string
}

func (e *SchemaError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("sheet: missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("sheet %q: missing required columns: %s", e.Sheet, strings.Join(e.Missing, ", "))
}
