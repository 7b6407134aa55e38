package protocol

import (
	"encoding/json"
	"testing"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env := MustEnvelope(MsgJoin, JoinMsg{PlayerID: "p1", Name: "Ann"})
	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"type":"join","payload":{"player_id":"p1","name":"Ann"}}` {
		t.Errorf("wire form = %s", data)
	}

	var got Envelope
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var join JoinMsg
	if err := got.Decode(&join); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if join.PlayerID != "p1" || join.Name != "Ann" {
		t.Errorf("join = %+v", join)
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	var ready ReadyMsg
	if err := (Envelope{Type: MsgReady}).Decode(&ready); err != nil || ready.Ready {
		t.Errorf("empty payload: %+v, %v", ready, err)
	}
	if err := (Envelope{Type: MsgReady, Payload: json.RawMessage(`[]`)}).Decode(&ready); err == nil {
		t.Error("array payload should not decode into ReadyMsg")
	}
}

func TestMustEnvelopePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unencodable payload")
		}
	}()
	MustEnvelope(MsgEvent, make(chan int))
}
