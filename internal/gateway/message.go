// Package gateway is the session gateway: it accepts client connections,
// validates and routes their messages into the simulation, and
// broadcasts per-tick world snapshots back out. It is the only part of
// the system that touches the network; every other package only knows
// about *world.World.
//
// Sessions live in a doubly-linked ClientList, the wire format is a
// tagged {type, data} envelope decoded through reflection-based
// registries, and a single select-loop goroutine is simulation's sole
// writer.
package gateway

import (
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
)

// json is a jsoniter codec instance, used for the wire codec.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

type messageType string

// Inbound is a message a client may send. Process mutates gateway/world
// state on behalf of the session that sent it.
type Inbound interface {
	Process(gw *Gateway, sess *ClientData)
}

// Outbound is a message the server may send to a client.
type Outbound interface{}

// envelope is the wire shape: {"type": "...", "data": {...}}.
type envelope struct {
	Type messageType     `json:"type"`
	Data jsoniter.RawMessage `json:"data"`
}

var (
	inboundTypes  = make(map[messageType]reflect.Type)
	outboundNames = make(map[reflect.Type]messageType)
)

// registerInbound associates a wire type name with the concrete Go type
// client messages of that name decode into. Wire names are a mix of
// camelCase and snake_case, so they're passed here explicitly rather
// than derived from the Go type name.
func registerInbound(name string, sample Inbound) {
	inboundTypes[messageType(name)] = reflect.TypeOf(sample).Elem()
}

// registerOutbound associates a Go type with the wire type name used
// when marshaling a value of that type.
func registerOutbound(name string, sample Outbound) {
	outboundNames[reflect.TypeOf(sample)] = messageType(name)
}

func init() {
	registerInbound("setPlayerName", &SetPlayerName{})
	registerInbound("input", &InputMessage{})
	registerInbound("enterHarbor", &EnterHarbor{})
	registerInbound("closeHarbor", &CloseHarbor{})
	registerInbound("repairShip", &RepairShip{})
	registerInbound("switchFlagship", &SwitchFlagship{})
	registerInbound("debug_teleport", &DebugTeleport{})

	registerOutbound("map_data", MapData{})
	registerOutbound("gamestate_update", GamestateUpdate{})
	registerOutbound("harborData", HarborData{})
	registerOutbound("harborClosed", HarborClosed{})
	registerOutbound("missionComplete", MissionComplete{})
	registerOutbound("transactionResult", TransactionResult{})
	registerOutbound("nameRejected", NameRejected{})
	registerOutbound("server_full", ServerFull{})
}

// decodeInbound parses one client message. An unknown type name is
// reported rather than silently dropped so the caller can log it and
// close the connection: a malformed payload is an input validation
// failure.
func decodeInbound(raw []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("gateway: decode envelope: %w", err)
	}

	typ, ok := inboundTypes[env.Type]
	if !ok {
		return nil, fmt.Errorf("gateway: unknown inbound type %q", env.Type)
	}

	v := reflect.New(typ)
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, v.Interface()); err != nil {
			return nil, fmt.Errorf("gateway: decode %s payload: %w", env.Type, err)
		}
	}
	return v.Interface().(Inbound), nil
}

// encodeOutbound wraps out in the {type, data} envelope and marshals it.
// Panics on an unregistered type: outbound values only ever come from
// this package's own snapshot/response builders, so an unregistered
// type is a programming error, not a runtime condition.
func encodeOutbound(out Outbound) ([]byte, error) {
	name, ok := outboundNames[reflect.TypeOf(out)]
	if !ok {
		panic(fmt.Sprintf("gateway: outbound type %T not registered", out))
	}
	return json.Marshal(struct {
		Type messageType `json:"type"`
		Data Outbound    `json:"data"`
	}{Type: name, Data: out})
}
