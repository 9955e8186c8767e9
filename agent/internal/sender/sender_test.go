package sender_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/buffer"
	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/sender"
	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

var testDevice = wire.DeviceIdentity{DeviceID: "dev-1", Hostname: "host-a"}

func newQueue(t *testing.T) *buffer.Queue {
	t.Helper()
	q, err := buffer.NewQueue(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return q
}

func cleanContext(id string) wire.CleanContext {
	return wire.CleanContext{
		ContextID:   id,
		PayloadType: "process_execution",
		Device:      testDevice,
		Events:      []wire.CleanEvent{{ContextID: id, Type: wire.EventProcessStart, Timestamp: 1.0, Count: 1}},
	}
}

func TestSender_DeliversBatch(t *testing.T) {
	var received wire.Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	q := newQueue(t)
	require.NoError(t, q.Enqueue(cleanContext("CTX-aa")))
	require.NoError(t, q.Enqueue(cleanContext("CTX-bb")))

	client := sender.NewAPIClient(srv.URL, time.Second)
	s := sender.New(q, client, testDevice, time.Second, 10, clockwork.NewFakeClock(), zap.NewNop())
	s.Pass(context.Background())

	assert.Equal(t, "dev-1", received.Device.DeviceID)
	require.Len(t, received.Events, 2)

	mainLen, retryLen := q.Len()
	assert.Equal(t, 0, mainLen)
	assert.Equal(t, 0, retryLen)
}

func TestSender_FailedBatchParkedThenRetried(t *testing.T) {
	healthy := false
	var delivered int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		var p wire.Payload
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &p))
		delivered += len(p.Events)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	q := newQueue(t)
	require.NoError(t, q.Enqueue(cleanContext("CTX-aa")))

	client := sender.NewAPIClient(srv.URL, time.Second)
	s := sender.New(q, client, testDevice, time.Second, 10, clockwork.NewFakeClock(), zap.NewNop())

	// Backend down: batch moves to the retry queue, nothing is lost.
	s.Pass(context.Background())
	mainLen, retryLen := q.Len()
	assert.Equal(t, 0, mainLen)
	assert.Equal(t, 1, retryLen)

	// Backend recovers: the retry queue drains on a pass with an empty main
	// queue.
	healthy = true
	s.Pass(context.Background())
	assert.Equal(t, 1, delivered)

	mainLen, retryLen = q.Len()
	assert.Equal(t, 0, mainLen)
	assert.Equal(t, 0, retryLen)
}

func TestSender_MainQueueHasPriorityOverRetry(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p wire.Payload
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &p))
		for _, raw := range p.Events {
			var cc wire.CleanContext
			require.NoError(t, json.Unmarshal(raw, &cc))
			got = append(got, cc.ContextID)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	q := newQueue(t)
	require.NoError(t, q.MoveToRetry([]wire.CleanContext{cleanContext("CTX-old")}))
	require.NoError(t, q.Enqueue(cleanContext("CTX-new")))

	client := sender.NewAPIClient(srv.URL, time.Second)
	s := sender.New(q, client, testDevice, time.Second, 10, clockwork.NewFakeClock(), zap.NewNop())

	s.Pass(context.Background())
	s.Pass(context.Background())
	assert.Equal(t, []string{"CTX-new", "CTX-old"}, got)
}

func TestAPIClient_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := sender.NewAPIClient(srv.URL, time.Second)
	err := client.SendPayload(context.Background(), wire.Payload{Device: testDevice})
	assert.Error(t, err)
}

func TestSender_EmptyQueuesNoRequest(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	q := newQueue(t)
	client := sender.NewAPIClient(srv.URL, time.Second)
	s := sender.New(q, client, testDevice, time.Second, 10, clockwork.NewFakeClock(), zap.NewNop())

	s.Pass(context.Background())
	assert.Equal(t, 0, calls)
}
