package contextengine

import (
	"strings"

	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// Payload types assigned to a drained context, coarse hints for downstream
// analytics.
const (
	PayloadPersistence    = "persistence_activity"
	PayloadProcessNetwork = "process_network_activity"
	PayloadFilesystem     = "filesystem_activity"
	PayloadProcess        = "process_execution"
	PayloadNetwork        = "network_activity"
	PayloadUnknown        = "unknown"
)

// Classify derives the payload type from the event types present in a
// context. Rules are evaluated in priority order, first match wins.
func Classify(events []wire.CleanEvent) string {
	types := make(map[string]bool, len(events))
	hasFile := false
	for _, ev := range events {
		types[ev.Type] = true
		if strings.HasPrefix(ev.Type, "file_") {
			hasFile = true
		}
	}

	switch {
	case types[wire.EventPersistenceCreated]:
		return PayloadPersistence
	case types[wire.EventNetworkConnect] && types[wire.EventProcessStart]:
		return PayloadProcessNetwork
	case hasFile:
		return PayloadFilesystem
	case types[wire.EventProcessStart]:
		return PayloadProcess
	case types[wire.EventNetworkConnect]:
		return PayloadNetwork
	default:
		return PayloadUnknown
	}
}
