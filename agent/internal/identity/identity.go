// Package identity resolves the immutable device identity and the session
// user context reported with every payload.
package identity

import (
	"os"
	"os/user"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// Device returns the static identity block for this host. The device id is
// the kernel's hardware-bound host id, stable across agent restarts.
func Device() (wire.DeviceIdentity, error) {
	info, err := host.Info()
	if err != nil {
		return wire.DeviceIdentity{}, err
	}

	arch := info.KernelArch
	if arch == "" {
		arch = runtime.GOARCH
	}

	d := wire.DeviceIdentity{
		DeviceID:     info.HostID,
		Hostname:     info.Hostname,
		OS:           info.OS,
		OSVersion:    info.PlatformVersion,
		Architecture: arch,
	}
	if u, err := user.Current(); err == nil {
		d.User = u.Username
	}
	return d, nil
}

// User returns the interactive session context the agent runs under.
func User() wire.UserContext {
	ctx := wire.UserContext{
		SessionType: "local",
		IsAdmin:     isAdmin(),
	}
	if u, err := user.Current(); err == nil {
		ctx.Username = u.Username
		ctx.UID = u.Uid
	}
	return ctx
}

// isAdmin reports whether the agent runs with elevated privileges.
// os.Geteuid returns -1 on Windows, where elevation is not checked.
func isAdmin() bool {
	return os.Geteuid() == 0
}
