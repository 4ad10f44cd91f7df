package action

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("invalid action parameters")

// Envelope is the wire form of an action
type Envelope struct {
	Type   string          `json:"type"`
	Header Header          `json:"header"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Encode wraps an action into an envelope
func Encode(a GameAction) (Envelope, error) {
	params, err := json.Marshal(a)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s params: %w", a.Type(), err)
	}
	return Envelope{
		Type:   a.Type(),
		Header: *a.GetHeader(),
		Params: params,
	}, nil
}

// Decode builds the action an envelope describes
func Decode(env Envelope) (GameAction, error) {
	a, err := New(env.Type)
	if err != nil {
		return nil, err
	}
	params := bytes.TrimSpace(env.Params)
	if len(params) > 0 && !bytes.Equal(params, []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(params))
		dec.DisallowUnknownFields()
		if err := dec.Decode(a); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidParams, env.Type, err)
		}
	}
	*a.GetHeader() = env.Header
	return a, nil
}

// Marshal encodes an action to envelope JSON
func Marshal(a GameAction) ([]byte, error) {
	env, err := Encode(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// Unmarshal decodes envelope JSON into an action
func Unmarshal(data []byte) (GameAction, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return Decode(env)
}
