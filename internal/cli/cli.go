package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"nodeaddr/internal/node"
	"nodeaddr/internal/topology"
)

// CLI dispatches one sub-command and prints its single result line.
type CLI struct {
	out    io.Writer
	logger *slog.Logger
}

type command struct {
	usage string
	nargs int
	run   func(c *CLI, args []string) (string, error)
}

var commands = map[string]command{
	"partid":  {usage: "partid <node_id>", nargs: 1, run: (*CLI).partID},
	"repid":   {usage: "repid <node_id>", nargs: 1, run: (*CLI).repID},
	"roleof":  {usage: "roleof <node_id>", nargs: 1, run: (*CLI).roleOf},
	"portof":  {usage: "portof <endpoints> <node_id> [rf]", nargs: 2, run: (*CLI).portOf},
	"peersof": {usage: "peersof <endpoints> <node_id> [rf]", nargs: 2, run: (*CLI).peersOf},
}

func New(out io.Writer, logger *slog.Logger) *CLI {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CLI{out: out, logger: logger}
}

// Run executes args[0] with the remaining positional arguments. Nothing is
// written to out unless the command succeeds.
func (c *CLI) Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", topology.ErrInvalidArgument)
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", topology.ErrInvalidArgument, name)
	}
	if len(args)-1 < cmd.nargs {
		return fmt.Errorf("%w: missing argument to '%s' (usage: %s)", topology.ErrInvalidArgument, name, cmd.usage)
	}

	result, err := cmd.run(c, args[1:])
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.out, result)
	return err
}

// Usage lists every sub-command, one per line.
func Usage(w io.Writer) {
	for _, name := range []string{"partid", "repid", "roleof", "portof", "peersof"} {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}

func (c *CLI) partID(args []string) (string, error) {
	id, err := node.Parse(args[0])
	if err != nil {
		return "", err
	}
	return strconv.Itoa(id.Partition), nil
}

func (c *CLI) repID(args []string) (string, error) {
	id, err := node.Parse(args[0])
	if err != nil {
		return "", err
	}
	return strconv.Itoa(id.Replica), nil
}

func (c *CLI) roleOf(args []string) (string, error) {
	id, err := node.Parse(args[0])
	if err != nil {
		return "", err
	}
	if id.Role == node.RoleOther {
		return "", fmt.Errorf("%w: node id %q is neither a server nor a manager", topology.ErrInvalidArgument, id.Raw)
	}
	return id.Role.String(), nil
}

func (c *CLI) portOf(args []string) (string, error) {
	endpoints, id, rf, err := c.resolveArgs(args)
	if err != nil {
		return "", err
	}

	port, err := topology.PortOf(endpoints, id, rf)
	if err != nil {
		return "", err
	}
	if port == "" {
		c.logger.Debug("portof: node outside deployment",
			slog.String("node_id", id.Raw),
			slog.Int("endpoints", len(endpoints)),
		)
	}
	return port, nil
}

func (c *CLI) peersOf(args []string) (string, error) {
	endpoints, id, rf, err := c.resolveArgs(args)
	if err != nil {
		return "", err
	}

	peers, err := topology.PeersOf(endpoints, id, rf)
	if err != nil {
		return "", err
	}
	if peers == "" {
		c.logger.Debug("peersof: replica outside partition group",
			slog.String("node_id", id.Raw),
			slog.Int("endpoints", len(endpoints)),
		)
	}
	return peers, nil
}

// resolveArgs parses "<endpoints> <node_id> [rf]".
func (c *CLI) resolveArgs(args []string) (topology.Endpoints, node.ID, int, error) {
	endpoints := topology.ParseEndpoints(args[0])

	id, err := node.Parse(args[1])
	if err != nil {
		return nil, node.ID{}, 0, err
	}

	rf := topology.InferRF
	if len(args) > 2 {
		rf, err = strconv.Atoi(args[2])
		if err != nil || rf < 1 {
			return nil, node.ID{}, 0, fmt.Errorf("%w: replication factor must be a positive integer, got %q", topology.ErrInvalidArgument, args[2])
		}
	}

	c.logger.Debug("resolving node",
		slog.String("node_id", id.Raw),
		slog.String("role", id.Role.String()),
		slog.Int("partition", id.Partition),
		slog.Int("replica", id.Replica),
		slog.Int("rf", rf),
		slog.Int("endpoints", len(endpoints)),
	)

	return endpoints, id, rf, nil
}
