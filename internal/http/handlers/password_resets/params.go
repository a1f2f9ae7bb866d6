package passwordresets

import (
	"encoding/json"
	"recovery/internal/core/domain/user"
	"strconv"
	"strings"
)

const TOKEN_MAX_LEN = 1024

// ParseUserID accepts the owner id as sent by the reset link (a string) or as
// a JSON number. Anything else yields 0, which never owns a reset.
func ParseUserID(raw string) user.ID {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return user.ID(id)
}

func ParseJSONUserID(raw json.RawMessage) user.ID {
	if len(raw) == 0 {
		return 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseUserID(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return ParseUserID(n.String())
	}
	return 0
}
