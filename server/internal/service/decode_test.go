package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vamsirusheel01/sentinel-ai/server/internal/service"
)

func TestDecodePayload_Envelope(t *testing.T) {
	body := `{
		"device": {"device_id": "dev-1", "hostname": "host-a", "os": "linux"},
		"events": [
			{
				"context_id": "CTX-aabbccdd",
				"payload_type": "process_network_activity",
				"events": [
					{"context_id": "CTX-aabbccdd", "event_type": "process_start", "timestamp": 1000.0, "pid": 42, "process_name": "curl"},
					{"context_id": "CTX-aabbccdd", "event_type": "network_connect", "timestamp": 1003.0, "pid": 42, "details": {"remote_ip": "10.0.0.9", "remote_port": 4444}, "count": 3}
				]
			}
		],
		"timestamp": "2026-08-01T12:00:00Z"
	}`

	batch, err := service.DecodePayload([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "dev-1", batch.Device.DeviceID)
	assert.Equal(t, "host-a", batch.Device.Hostname)

	require.Len(t, batch.Contexts, 1)
	cc := batch.Contexts[0]
	assert.Equal(t, "CTX-aabbccdd", cc.ContextID)
	assert.Equal(t, "process_network_activity", cc.PayloadType)
	require.Len(t, cc.Events, 2)
	assert.Equal(t, "process_start", cc.Events[0].Type)
	assert.Equal(t, "10.0.0.9", cc.Events[1].String("remote_ip"))
	assert.Equal(t, 3, cc.Events[1].Count)
}

func TestDecodePayload_BareArrayOfRecords(t *testing.T) {
	body := `[
		{"event_type": "process_start", "timestamp": 1.0, "pid": 7, "process_name": "bash",
		 "device": {"device_id": "dev-9"}},
		{"event_type": "network_connect", "timestamp": 2.0, "pid": 7}
	]`

	batch, err := service.DecodePayload([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "dev-9", batch.Device.DeviceID)
	require.Len(t, batch.Contexts, 2)
	assert.Len(t, batch.Contexts[0].Events, 1)
	assert.Equal(t, "process_execution", batch.Contexts[0].PayloadType)
	assert.Equal(t, "network_activity", batch.Contexts[1].PayloadType)
}

func TestDecodePayload_ClassificationFallback(t *testing.T) {
	body := `{
		"device": {"device_id": "dev-1"},
		"events": [
			{
				"context_id": "CTX-11223344",
				"events": [
					{"event_type": "process_start", "timestamp": 1.0, "pid": 1},
					{"event_type": "network_connect", "timestamp": 2.0, "pid": 1}
				]
			}
		]
	}`

	batch, err := service.DecodePayload([]byte(body))
	require.NoError(t, err)
	require.Len(t, batch.Contexts, 1)
	assert.Equal(t, "process_network_activity", batch.Contexts[0].PayloadType)
}

func TestDecodePayload_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"empty body", "", service.ErrEmptyPayload},
		{"whitespace body", "   \n", service.ErrEmptyPayload},
		{"no events", `{"device": {"device_id": "dev-1"}, "events": []}`, service.ErrEmptyPayload},
		{"empty array", `[]`, service.ErrEmptyPayload},
		{"garbage", `{"device":`, service.ErrInvalidPayload},
		{"not json", `hello`, service.ErrInvalidPayload},
		{"missing device id", `{"events": [{"event_type": "process_start", "timestamp": 1.0}]}`, service.ErrInvalidPayload},
		{"event without type", `{"device": {"device_id": "d"}, "events": [{"timestamp": 1.0}]}`, service.ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.DecodePayload([]byte(tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
