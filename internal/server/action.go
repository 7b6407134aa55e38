package server

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"machikoro/internal/engine"
	"machikoro/internal/protocol"
)

// decodeAction turns an in-game message into an engine action. Payload
// fields may arrive as numbers or as form strings.
func decodeAction(env protocol.Envelope) (engine.Action, error) {
	typ := engine.ActionType(env.Type)
	if !engine.IsAction(typ) {
		return engine.Action{}, fmt.Errorf("unknown message type %q", env.Type)
	}

	raw := map[string]any{}
	if len(env.Payload) > 0 && string(env.Payload) != "null" {
		if err := json.Unmarshal(env.Payload, &raw); err != nil {
			return engine.Action{}, fmt.Errorf("invalid %s payload", env.Type)
		}
	}

	var action engine.Action
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToIntHookFunc(),
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           &action,
	})
	if err != nil {
		return engine.Action{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return engine.Action{}, fmt.Errorf("invalid %s payload: %w", env.Type, err)
	}
	action.Type = typ
	if action.Type == engine.ActionRoll && action.Dice == 0 {
		action.Dice = 1
	}
	return action, nil
}

// stringToIntHookFunc parses numeric strings from form inputs. Blank
// strings decode as zero.
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data any) (any, error) {
		if from != reflect.String || to != reflect.Int {
			return data, nil
		}
		s := strings.TrimSpace(data.(string))
		if s == "" {
			return 0, nil
		}
		return strconv.Atoi(s)
	}
}
