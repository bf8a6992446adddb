package blockset

import (
	"bytes"
	"encoding/json"
)

// Page is one slice of a paged resource. NextURL absent means the final
// page; re-querying NextURL yields the subsequent page in the same order.
type Page[T any] struct {
	Items       []T
	PreviousURL *string
	NextURL     *string
}

// envelope is the outer object wrapping embedded collections and the
// optional pagination links.
type envelope struct {
	Embedded map[string]json.RawMessage `json:"_embedded"`
	Previous *string                    `json:"previous,omitempty"`
	Next     *string                    `json:"next,omitempty"`
}

// parseRoot deserializes the whole body as one T. A JSON null is a
// transform error, not an empty success.
func parseRoot[T any](body []byte) (T, *Error) {
	var zero T
	if len(bytes.TrimSpace(body)) == 0 {
		return zero, badResponse("no data")
	}

	var value *T
	if err := json.Unmarshal(body, &value); err != nil {
		return zero, badResponse("json parse: " + err.Error())
	}
	if value == nil {
		return zero, badResponse("Transform error")
	}
	return *value, nil
}

// parseEmbedded extracts the collection named key from the envelope's
// _embedded object. A missing key means no items, which is a success with
// an empty sequence and distinct from a malformed body.
func parseEmbedded[T any](body []byte, key string) ([]T, *Error) {
	page, err := parseEmbeddedPaged[T](body, key)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// parseEmbeddedPaged is parseEmbedded plus the previous/next continuation
// links, both defaulting to absent.
func parseEmbeddedPaged[T any](body []byte, key string) (Page[T], *Error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Page[T]{}, badResponse("no data")
	}

	var outer envelope
	if err := json.Unmarshal(body, &outer); err != nil {
		return Page[T]{}, badResponse("json parse: " + err.Error())
	}

	items := []T{}
	if raw, ok := outer.Embedded[key]; ok {
		if err := json.Unmarshal(raw, &items); err != nil {
			return Page[T]{}, badResponse("json parse " + key + ": " + err.Error())
		}
	}

	return Page[T]{
		Items:       items,
		PreviousURL: outer.Previous,
		NextURL:     outer.Next,
	}, nil
}
