package node

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	serverMarker  = "s"
	managerMarker = "m"
)

var ErrMalformedID = errors.New("malformed node id")

type Role int

const (
	RoleOther Role = iota
	RoleServer
	RoleManager
)

func (r Role) String() string {
	switch r {
	case RoleServer:
		return "server"
	case RoleManager:
		return "manager"
	default:
		return "other"
	}
}

// ID is a parsed node identifier and its coordinate in the cluster.
// Servers are "s<partition>" or "s<partition>.<replica>". Every other id
// sits at partition 0, replica 0.
type ID struct {
	Raw       string
	Partition int
	Replica   int
	Role      Role
}

// Parse turns a node id into its (partition, replica) coordinate.
func Parse(raw string) (ID, error) {
	id := ID{Raw: raw, Role: roleOf(raw)}
	if id.Role != RoleServer {
		return id, nil
	}

	partStr, repStr, hasReplica := strings.Cut(strings.TrimPrefix(raw, serverMarker), ".")

	partition, err := parseIndex(partStr)
	if err != nil {
		return ID{}, fmt.Errorf("%w %q: partition: %w", ErrMalformedID, raw, err)
	}
	id.Partition = partition

	if hasReplica {
		replica, err := parseIndex(repStr)
		if err != nil {
			return ID{}, fmt.Errorf("%w %q: replica: %w", ErrMalformedID, raw, err)
		}
		id.Replica = replica
	}

	return id, nil
}

func (id ID) String() string {
	return id.Raw
}

func roleOf(raw string) Role {
	switch {
	case strings.HasPrefix(raw, serverMarker):
		return RoleServer
	case strings.HasPrefix(raw, managerMarker):
		return RoleManager
	default:
		return RoleOther
	}
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative index %d", n)
	}
	return n, nil
}
