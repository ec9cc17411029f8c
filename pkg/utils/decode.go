package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DecodeJSON strictly decodes a single JSON object from the request body into
// dst. Unknown fields and mistyped values are reported as field messages.
func DecodeJSON(r *http.Request, dst any) []string {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return []string{describeDecodeError(err)}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return []string{"body must contain a single JSON object"}
	}

	return nil
}

func describeDecodeError(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, io.EOF):
		return "body must not be empty"
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("body contains malformed JSON at offset %d", syntaxErr.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "body contains malformed JSON"
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return "body must be a JSON object"
		}
		return fmt.Sprintf("%s: must be %s", typeErr.Field, describeKind(typeErr.Type.String()))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return fmt.Sprintf("property %s should not exist", strings.Trim(field, `"`))
	default:
		return err.Error()
	}
}

func describeKind(goType string) string {
	goType = strings.TrimPrefix(goType, "*")
	switch {
	case strings.HasPrefix(goType, "int"):
		return "an integer number"
	case strings.HasPrefix(goType, "float"):
		return "a number"
	case goType == "string":
		return "a string"
	default:
		return "a valid " + goType
	}
}
