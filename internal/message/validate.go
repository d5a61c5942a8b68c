package message

import (
	"fmt"
	"unicode"
)

// MsgIDLength is the fixed width of an IDEC message id.
const MsgIDLength = 20

// IDError reports a malformed msgid.
type IDError struct {
	ID string
}

func (e *IDError) Error() string {
	return fmt.Sprintf("incorrect msgid: %q", e.ID)
}

// IsValidID reports whether msgid is a well-formed message id:
// exactly 20 characters, all ASCII.
func IsValidID(msgid string) bool {
	if len(msgid) != MsgIDLength {
		return false
	}
	for i := 0; i < len(msgid); i++ {
		if msgid[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// ValidateIDs checks every msgid in the collection and returns an
// *IDError for the first malformed one, in iteration order.
func ValidateIDs(msgids []string) error {
	for _, msgid := range msgids {
		if !IsValidID(msgid) {
			return &IDError{ID: msgid}
		}
	}
	return nil
}
