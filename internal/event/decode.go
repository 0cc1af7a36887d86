package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns an event payload as T. In-process publishers hand
// over T or *T directly; anything else (a map from a replayed JSON event, for
// instance) is converted through a JSON round trip.
func DecodePayload[T any](payload interface{}) (T, error) {
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var out T
	if payload == nil {
		return out, fmt.Errorf(ErrMsgNilPayloadFmt, out)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf(ErrMsgDecodePayloadFmt, out, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf(ErrMsgDecodePayloadFmt, out, err)
	}
	return out, nil
}
