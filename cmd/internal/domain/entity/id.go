package entity

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ID is an identifier issued by the upstream. The dashboard never originates
// one and never interprets it, it only echoes it back in paths and queries.
//
// The upstream encodes ids as JSON integers, but strings are accepted as well.
type ID string

var errInvalidID = errors.New("id must be a JSON number or string")

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == ""
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errInvalidID
	}
	*id = ID(n.String())
	return nil
}
