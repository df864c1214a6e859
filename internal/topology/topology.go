package topology

import (
	"errors"
	"fmt"
	"strings"

	"nodeaddr/internal/node"
)

// InferRF asks a resolver to pick the replication factor itself.
const InferRF = 0

// NoPeers is printed instead of an empty peer list for single-member partitions.
const NoPeers = "none"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyPortField  = errors.New("empty port field")
)

// EmptyPortFieldError reports a node whose endpoint is present but carries a blank port.
type EmptyPortFieldError struct {
	Node string
}

func (e *EmptyPortFieldError) Error() string {
	return fmt.Sprintf("node %s's API port is empty", e.Node)
}

func (e *EmptyPortFieldError) Is(target error) bool {
	return target == ErrEmptyPortField
}

// Endpoints is the ordered cluster inventory. Position is identity.
type Endpoints []string

// ParseEndpoints splits a comma-separated "host:port" list. Tokens are kept verbatim.
func ParseEndpoints(s string) Endpoints {
	return Endpoints(strings.Split(s, ","))
}

// PortField returns the trimmed text after the last ':' of the endpoint at i.
func (e Endpoints) PortField(i int) string {
	ep := e[i]
	return strings.TrimSpace(ep[strings.LastIndex(ep, ":")+1:])
}

// PortOf returns the port the node binds. An index past the end of the list
// yields "" so callers can probe for nodes a smaller deployment does not have.
func PortOf(endpoints Endpoints, id node.ID, rf int) (string, error) {
	if rf < 1 {
		rf = 1
		if id.Partition == 0 {
			rf = len(endpoints)
		}
	}

	index, ok := linearIndex(id.Partition, id.Replica, rf, len(endpoints))
	if !ok {
		return "", nil
	}

	port := endpoints.PortField(index)
	if port == "" {
		return "", &EmptyPortFieldError{Node: id.Raw}
	}
	return port, nil
}

// PeersOf returns the other endpoints of the node's partition joined by ','.
// Unlike PortOf, an inferred rf is always the full list length.
func PeersOf(endpoints Endpoints, id node.ID, rf int) (string, error) {
	if rf < 1 {
		rf = len(endpoints)
	}

	group := endpoints.partitionGroup(id.Partition, rf)
	if id.Replica >= len(group) {
		return "", nil
	}

	peers := make([]string, 0, len(group)-1)
	peers = append(peers, group[:id.Replica]...)
	peers = append(peers, group[id.Replica+1:]...)

	joined := strings.Join(peers, ",")
	if joined == "" {
		return NoPeers, nil
	}
	return joined, nil
}

// linearIndex computes partition*rf + replica and reports whether it falls
// inside a list of n endpoints. Bounds are checked before multiplying.
func linearIndex(partition, replica, rf, n int) (int, bool) {
	if replica >= n || partition >= n || (partition > 0 && rf >= n) {
		return 0, false
	}
	index := partition*rf + replica
	return index, index < n
}

// partitionGroup returns endpoints[partition*rf : (partition+1)*rf] clamped to the list.
func (e Endpoints) partitionGroup(partition, rf int) Endpoints {
	if partition >= len(e) || (partition > 0 && rf >= len(e)) {
		return nil
	}
	lo := min(partition*rf, len(e))
	hi := min(lo+rf, len(e))
	return e[lo:hi]
}
