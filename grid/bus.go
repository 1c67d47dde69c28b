package grid

import (
	"fmt"
	"strings"
)

// BusRole classifies a bus for network studies.
type BusRole int

const (
	RoleUnset     BusRole = iota // no classification supplied
	RolePQ                       // load bus
	RolePV                       // voltage-controlled bus
	RoleReference                // slack bus, angle reference
	RoleIsolated                 // out of service
)

// SlackTag is the case-file tag marking the reference bus.
const SlackTag = "slack"

var roleNames = map[BusRole]string{
	RoleUnset:     "",
	RolePQ:        "pq",
	RolePV:        "pv",
	RoleReference: SlackTag,
	RoleIsolated:  "isolated",
}

func (r BusRole) String() string {
	if name, ok := roleNames[r]; ok {
		if name == "" {
			return "unset"
		}
		return name
	}
	return fmt.Sprintf("BusRole(%d)", int(r))
}

// ParseBusRole maps a case-file tag to a role. Numeric tags follow the
// PQ=1, PV=2, reference=3, isolated=4 convention.
func ParseBusRole(tag string) (BusRole, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "":
		return RoleUnset, nil
	case "pq", "1":
		return RolePQ, nil
	case "pv", "2":
		return RolePV, nil
	case SlackTag, "ref", "reference", "3":
		return RoleReference, nil
	case "isolated", "4":
		return RoleIsolated, nil
	}
	return RoleUnset, fmt.Errorf("bus type %q: %w", tag, ErrUnknownBusType)
}

// Bus is a network node. Number is its 1-based matrix index.
type Bus struct {
	Number int
	Role   BusRole
	Name   string
}

func (b Bus) IsReference() bool {
	return b.Role == RoleReference
}

func (b Bus) String() string {
	if b.Name != "" {
		return fmt.Sprintf("bus %d (%s)", b.Number, b.Name)
	}
	return fmt.Sprintf("bus %d", b.Number)
}
