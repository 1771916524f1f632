package serialcon

import (
	"errors"
	"strings"

	"go.bug.st/serial/enumerator"
)

// ErrNoDevice is returned when UART discovery finds no serial device at all.
var ErrNoDevice = errors.New("no serial device found")

// PortInfo holds details about an enumerated serial port.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
}

// ListPorts returns the serial ports currently attached to the host.
func ListPorts() ([]PortInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	var result []PortInfo
	for _, p := range ports {
		result = append(result, PortInfo{
			Name:         p.Name,
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
		})
	}
	return result, nil
}

// FindPort scans the attached serial devices for one matching the given USB
// vendor/product signature. The first match wins; if nothing matches, the
// first enumerated device is returned as a fallback. ErrNoDevice is returned
// when no device is attached at all.
func FindPort(vid, pid string) (string, error) {
	ports, err := ListPorts()
	if err != nil {
		return "", err
	}
	return pickPort(ports, vid, pid)
}

func pickPort(ports []PortInfo, vid, pid string) (string, error) {
	if len(ports) == 0 {
		return "", ErrNoDevice
	}
	for _, p := range ports {
		if !p.IsUSB {
			continue
		}
		if strings.EqualFold(p.VID, vid) && (pid == "" || strings.EqualFold(p.PID, pid)) {
			return p.Name, nil
		}
	}
	return ports[0].Name, nil
}
