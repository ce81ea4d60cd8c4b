package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrUnexpectedShape reports a list response that is neither an array nor an envelope.
var ErrUnexpectedShape = errors.New("apiclient: list response is neither an array nor a results envelope")

// Page is one list response. Next and Previous are passed through untouched.
type Page[T any] struct {
	Items    []T
	Count    int
	Next     string
	Previous string
}

// DecodePage accepts a bare JSON array or a {results, count, next, previous}
// envelope.
func DecodePage[T any](raw json.RawMessage) (Page[T], error) {
	var page Page[T]

	if len(raw) == 0 {
		page.Items = []T{}
		return page, nil
	}
	if !gjson.ValidBytes(raw) {
		return page, fmt.Errorf("failed to decode list: %w", ErrUnexpectedShape)
	}

	doc := gjson.ParseBytes(raw)
	switch {
	case doc.IsArray():
		if err := json.Unmarshal(raw, &page.Items); err != nil {
			return page, fmt.Errorf("failed to decode list: %w", err)
		}
		page.Count = len(page.Items)

	case doc.IsObject() && doc.Get("results").IsArray():
		if err := json.Unmarshal([]byte(doc.Get("results").Raw), &page.Items); err != nil {
			return page, fmt.Errorf("failed to decode results: %w", err)
		}
		page.Count = len(page.Items)
		if c := doc.Get("count"); c.Exists() {
			page.Count = int(c.Int())
		}
		page.Next = doc.Get("next").String()
		page.Previous = doc.Get("previous").String()

	default:
		return page, ErrUnexpectedShape
	}

	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}
