package casdoor

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StatusOK is the only envelope status that marks a successful call.
const StatusOK = "ok"

// Response is the payload of a successful call. Data and Data2 carry
// action-specific shapes; a failed call never yields a Response.
type Response[T1, T2 any] struct {
	Msg   string
	Data  T1
	Data2 T2
}

// envelope is the wire form every Casdoor action answers with. Payloads stay
// raw until the status is known, so a failure envelope never has to match
// the success shapes.
type envelope struct {
	Status string          `json:"status"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
	Data2  json.RawMessage `json:"data2"`
}

// decodeResponse turns a response body into a Response or an error. Unknown
// fields are ignored.
func decodeResponse[T1, T2 any](url string, body []byte) (*Response[T1, T2], error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("could not decode response envelope: %w", err)}
	}

	if env.Status != StatusOK {
		return nil, &APICallError{URL: url, Status: env.Status, Msg: env.Msg}
	}

	resp := &Response[T1, T2]{Msg: env.Msg}
	if err := decodePayload(env.Data, &resp.Data); err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("could not decode data: %w", err)}
	}
	if err := decodePayload(env.Data2, &resp.Data2); err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("could not decode data2: %w", err)}
	}

	return resp, nil
}

// decodePayload leaves out at its zero value when raw is absent or null.
func decodePayload(raw json.RawMessage, out any) error {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, out)
}
