package reconcile

import (
	"encoding/json"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/roach88/daybook/internal/errmodel"
	"github.com/roach88/daybook/internal/event"
)

// wireSchema constrains the exchange format: an object whose keys are ISO
// dates and whose values are lists of records. #Record is a definition, so
// unknown record fields are rejected; close() rejects non-date top-level
// keys.
const wireSchema = `
#Record: {
	id:    int
	title: string
	desc?: string
	time:  =~"^([01][0-9]|2[0-3]):[0-5][0-9]$"
}

close({
	[=~"^[0-9]{4}-[0-9]{2}-[0-9]{2}$"]: [...#Record]
})
`

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
)

func wireValue() cue.Value {
	schemaOnce.Do(func() {
		schemaValue = cuecontext.New().CompileString(wireSchema)
	})
	return schemaValue
}

// parseBook validates blob against the wire schema and decodes it into a
// Book. Every failure is a parse error; the caller must not have mutated
// anything yet.
func parseBook(blob []byte) (event.Book, error) {
	schema := wireValue()
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile wire schema: %w", err)
	}
	if err := cuejson.Validate(blob, schema); err != nil {
		return nil, errmodel.Parse("document does not match the calendar exchange format", err)
	}

	var book event.Book
	if err := json.Unmarshal(blob, &book); err != nil {
		return nil, errmodel.Parse("decode calendar document", err)
	}
	if book == nil {
		book = event.Book{}
	}
	return book, nil
}
