// Package to renders values into their wire representations.
package to

import (
	"net/http"

	"github.com/go-json-experiment/json"
)

// JSON writes obj to the response body as indented JSON. A nil slice is
// written as an empty array and a nil map as an empty object, so collection
// endpoints never serve null.
func JSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.MarshalOptions{}.MarshalFull(json.EncodeOptions{
		Indent: "  ",
	}, w, obj)
}
