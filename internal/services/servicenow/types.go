package servicenow

import (
	"bytes"
	"encoding/json"
	"time"
)

// Facts are the remote lifecycle facts for one ticket.
type Facts struct {
	RemoteID         string
	ClosedAt         *time.Time // converted to the policy zone; nil while open
	ClosedBy         string
	HasRetentionHold bool
	DeepLink         string
}

// envelope is the JSON wrapper every table API response uses.
type envelope[T any] struct {
	Result []T `json:"result"`
}

type requestItem struct {
	SysID    string    `json:"sys_id"`
	Number   string    `json:"number"`
	Active   string    `json:"active"`
	ClosedAt string    `json:"closed_at"`
	ClosedBy reference `json:"closed_by"`
}

type userRecord struct {
	UserName string `json:"user_name"`
}

type labelEntry struct {
	Label reference `json:"label"`
}

// reference models a table API reference field, which arrives either as an
// object with link/value keys or as an empty string when unset.
type reference struct {
	Value string `json:"value"`
}

func (r *reference) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		r.Value = ""
		return nil
	}
	type alias reference
	var decoded alias
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	r.Value = decoded.Value
	return nil
}
