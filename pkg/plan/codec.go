package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Decode parses a JSON record of kind k. Unknown fields and malformed dates
// are rejected; blank dates become absent.
func Decode(k Kind, data []byte) (Entity, error) {
	e, err := New(k)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(e); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, k, err)
	}
	e.tidy()
	return e, nil
}

// DecodeNew parses a caller-supplied record for a new entity. Store-owned
// fields are dropped before decoding so the store assigns them.
func DecodeNew(k Kind, data []byte) (Entity, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, k, err)
	}
	for name := range protected {
		delete(fields, name)
	}
	clean, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return Decode(k, clean)
}

// Encode renders the entity as stored JSON.
func Encode(e Entity) ([]byte, error) {
	return json.Marshal(e)
}

// Patch is a partial record keyed by JSON field name.
type Patch map[string]json.RawMessage

// protected fields are owned by the store, not by callers.
var protected = map[string]bool{
	"_id":       true,
	"createdAt": true,
	"updatedAt": true,
}

// Merge overlays patch on e and returns the re-parsed result. A JSON null
// clears a field. e is left untouched.
func Merge(e Entity, patch Patch) (Entity, error) {
	current, err := Encode(e)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(current, &fields); err != nil {
		return nil, err
	}
	for k, v := range patch {
		if protected[k] {
			continue
		}
		if string(v) == "null" {
			delete(fields, k)
			continue
		}
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return Decode(e.Kind(), merged)
}

// Clone deep-copies e through its JSON form.
func Clone(e Entity) Entity {
	data, err := Encode(e)
	if err != nil {
		return e
	}
	out, err := Decode(e.Kind(), data)
	if err != nil {
		return e
	}
	return out
}

// Sort orders entities by their first date (undated last), then label, then id.
func Sort[E Entity](entities []E) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := sortDay(entities[i]), sortDay(entities[j])
		switch {
		case a == "" && b != "":
			return false
		case a != "" && b == "":
			return true
		case a != b:
			return a < b
		}
		la, lb := strings.ToLower(entities[i].Label()), strings.ToLower(entities[j].Label())
		if la != lb {
			return la < lb
		}
		return entities[i].Base().ID < entities[j].Base().ID
	})
}

func sortDay(e Entity) string {
	s := e.Span()
	switch {
	case s.On != nil:
		return s.On.String()
	case s.Start != nil:
		return s.Start.String()
	case s.End != nil:
		return s.End.String()
	}
	return ""
}
