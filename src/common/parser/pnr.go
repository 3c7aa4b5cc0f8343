package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jack-barr3tt/erail-engine/src/common/types"
)

const (
	pnrVariable = "data"

	msgPnrNotFound = "PNR data not found"
	msgPnrParse    = "Error parsing PNR data"
)

var pnrPattern = assignmentPattern(pnrVariable)

func assignmentPattern(variable string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(variable) + `\s*=\s*(\{.*?;)`)
}

type embeddedJSONError struct {
	kind types.ErrorKind
	err  error
}

func (e *embeddedJSONError) Error() string { return e.err.Error() }
func (e *embeddedJSONError) Unwrap() error { return e.err }

// ExtractEmbeddedJSON finds the first `<variable> = {...};` assignment in a page
// and decodes the object literal.
func ExtractEmbeddedJSON(raw, variable string) (map[string]any, error) {
	pattern := pnrPattern
	if variable != pnrVariable {
		pattern = assignmentPattern(variable)
	}
	return extractWith(pattern, raw, variable)
}

func extractWith(pattern *regexp.Regexp, raw, variable string) (map[string]any, error) {
	match := pattern.FindStringSubmatch(raw)
	if match == nil {
		return nil, &embeddedJSONError{
			kind: types.DataNotFound,
			err:  fmt.Errorf("no assignment to %q found", variable),
		}
	}

	literal := strings.TrimSuffix(match[1], ";")
	var object map[string]any
	if err := json.Unmarshal([]byte(literal), &object); err != nil {
		return nil, &embeddedJSONError{
			kind: types.MalformedUpstream,
			err:  fmt.Errorf("decode %q: %w", variable, err),
		}
	}
	if object == nil {
		return nil, &embeddedJSONError{
			kind: types.MalformedUpstream,
			err:  fmt.Errorf("%q is not an object", variable),
		}
	}
	return object, nil
}

func ParsePnrPage(raw string, now time.Time) types.Result[types.PnrRecord] {
	record, err := extractWith(pnrPattern, raw, pnrVariable)
	if err != nil {
		kind := types.MalformedUpstream
		var jsonErr *embeddedJSONError
		if errors.As(err, &jsonErr) {
			kind = jsonErr.kind
		}
		message := msgPnrParse
		if kind == types.DataNotFound {
			message = msgPnrNotFound
		}
		return types.Fail[types.PnrRecord](kind, message, err, now)
	}
	return types.Ok(types.PnrRecord(record), now)
}
