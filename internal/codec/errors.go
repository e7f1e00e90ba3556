package codec

import (
	"errors"
	"fmt"
)

// DecodeReason categorizes decode failures.
type DecodeReason string

const (
	// ReasonCorrupt indicates bad framing, bad base64 or a failed
	// authentication tag.
	ReasonCorrupt DecodeReason = "corrupt"

	// ReasonWrongKey indicates the blob was sealed under a different key.
	ReasonWrongKey DecodeReason = "wrong-key"

	// ReasonMalformedJSON indicates the plaintext is not a state document.
	ReasonMalformedJSON DecodeReason = "malformed-json"
)

// DecodeError is returned by Open, Decode and Unmarshal.
type DecodeError struct {
	Reason  DecodeReason
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.Reason, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ReasonOf returns the DecodeReason of err, or "" if err is not a
// *DecodeError. Uses errors.As to handle wrapped errors.
func ReasonOf(err error) DecodeReason {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Reason
	}
	return ""
}
