package events

import "github.com/r-owen/toika-loom-client/internal/logging"

type ProtocolTracer struct{}

var Protocol = ProtocolTracer{}

func (ProtocolTracer) Receive(msgType string, size int) {
	logging.Trace("protocol.receive", map[string]interface{}{"type": msgType, "bytes": size})
}

func (ProtocolTracer) Unknown(msgType string) {
	logging.Trace("protocol.unknown", map[string]interface{}{"type": msgType})
}

func (ProtocolTracer) Discard(msgType, reason string) {
	logging.Trace("protocol.discard", map[string]interface{}{"type": msgType, "reason": reason})
}

func (ProtocolTracer) DecodeError(err error) {
	if err == nil {
		return
	}
	logging.Trace("protocol.decode-error", map[string]interface{}{"error": err.Error()})
}
