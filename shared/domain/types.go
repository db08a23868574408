package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a server-assigned identifier. Remote APIs emit it either as a JSON
// string or as a number, so both forms decode into the same value.
type ID string

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
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Flag is a boolean that also accepts 0/1 and "0"/"1"/"true"/"false",
// which is how form-encoded backends tend to echo checkbox values.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null":
		*f = false
		return nil
	case "true", "1", `"1"`, `"true"`, `"on"`:
		*f = true
		return nil
	case "false", "0", `"0"`, `"false"`, `""`, `"off"`:
		*f = false
		return nil
	}
	if n, err := strconv.ParseFloat(string(data), 64); err == nil {
		*f = n != 0
		return nil
	}
	return fmt.Errorf("invalid boolean value %s", data)
}

func (f Flag) Bool() bool { return bool(f) }
