package supervisor

import (
	"fmt"
	"strconv"
	"strings"
)

// Dispatch parses one operator command line and applies it to the named
// bot. Recognized verbs: "come <bot> <x> <y> <z>", "stop <bot>", and
// "pos <bot>".
func (s *Supervisor) Dispatch(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	verb := fields[0]
	if len(fields) < 2 {
		return fmt.Errorf("command %q: missing bot name", verb)
	}
	username := fields[1]
	c := s.Client(username)
	if c == nil {
		return fmt.Errorf("no such bot %q", username)
	}

	switch verb {
	case "come":
		if len(fields) != 5 {
			return fmt.Errorf("come %s: want x y z, got %d arguments", username, len(fields)-2)
		}
		x, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("come %s: invalid x %q: %w", username, fields[2], err)
		}
		y, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return fmt.Errorf("come %s: invalid y %q: %w", username, fields[3], err)
		}
		z, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return fmt.Errorf("come %s: invalid z %q: %w", username, fields[4], err)
		}
		c.Goto(x, y, z)
		return nil

	case "stop":
		c.Stop()
		return nil

	case "pos":
		pos := c.Position()
		s.log.Info("position", "bot", username, "x", pos.X, "y", pos.Y, "z", pos.Z)
		return nil

	default:
		return fmt.Errorf("unrecognized command %q", verb)
	}
}
