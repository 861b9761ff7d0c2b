// Package httpapi exposes the development backend over REST/JSON. Paths,
// bodies and error shapes follow the contract the signlink client speaks:
// validation failures are {field: [messages]} objects and everything else
// is {"detail": message}.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

// JSON sends data with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Detail sends {"detail": msg}.
func Detail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"detail": msg})
}

// FieldErrors sends a 400 with one message list per field.
func FieldErrors(w http.ResponseWriter, errs map[string][]string) {
	JSON(w, http.StatusBadRequest, errs)
}

var errEmptyBody = errors.New("empty body")

// DecodeJSON decodes the request body into target. Unknown fields are ignored.
func DecodeJSON(r *http.Request, target any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(target)
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}
	return err
}

func badJSON(w http.ResponseWriter, err error) {
	if errors.Is(err, errEmptyBody) {
		Detail(w, http.StatusBadRequest, "Request body is empty.")
		return
	}
	Detail(w, http.StatusBadRequest, "JSON parse error - "+err.Error())
}
