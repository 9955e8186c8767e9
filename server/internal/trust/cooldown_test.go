package trust_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/Vamsirusheel01/sentinel-ai/server/internal/trust"
)

func TestSignatureCache_Window(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := trust.NewSignatureCache(45*time.Second, clock)

	assert.True(t, c.Allow("dev-1", "recon_commands"))
	assert.False(t, c.Allow("dev-1", "recon_commands"))

	clock.Advance(44 * time.Second)
	assert.False(t, c.Allow("dev-1", "recon_commands"))

	clock.Advance(time.Second)
	assert.True(t, c.Allow("dev-1", "recon_commands"))
}

func TestSignatureCache_IndependentSignatures(t *testing.T) {
	c := trust.NewSignatureCache(45*time.Second, clockwork.NewFakeClock())

	assert.True(t, c.Allow("dev-1", "recon_commands"))
	assert.True(t, c.Allow("dev-1", "credential_dumping"), "different rule, same device")
	assert.True(t, c.Allow("dev-2", "recon_commands"), "different device, same rule")
}

func TestSignatureCache_GC(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := trust.NewSignatureCache(45*time.Second, clock)

	c.Allow("dev-1", "recon_commands")
	assert.Equal(t, 1, c.Len())

	// Idle past five cooldowns: the entry is collected on the next insert.
	clock.Advance(46 * 5 * time.Second)
	c.Allow("dev-2", "recon_commands")
	assert.Equal(t, 1, c.Len())
}
