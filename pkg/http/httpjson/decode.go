// Package httpjson decodes request bodies the way the trivia front end sends them.
package httpjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

// Decode reads the JSON request body into a T. On any decode error the zero T
// is returned together with the error, so callers can treat a malformed body
// as an empty one.
func Decode[T any](r *http.Request) (T, error) {
	var zero T
	if r.Body == nil {
		return zero, io.EOF
	}
	var out T
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&out); err != nil {
		return zero, err
	}
	return out, nil
}

// Int accepts a JSON number or a string holding an integer. HTML form
// controls in the front end submit numeric fields as strings.
type Int int

func (i *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
		if len(data) == 0 {
			*i = 0
			return nil
		}
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		var f float64
		if ferr := json.Unmarshal(data, &f); ferr != nil || f != float64(int(f)) {
			return fmt.Errorf("httpjson: %q is not an integer", data)
		}
		n = int(f)
	}
	*i = Int(n)
	return nil
}
