package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Names is a list of target names. In YAML it may be written as a single
// scalar or as a sequence.
type Names []string

// UnmarshalYAML accepts both `a: player` and `a: [player, enemy]`.
func (n *Names) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			*n = nil
			return nil
		}
		*n = Names{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*n = list
		return nil
	default:
		return fmt.Errorf("line %d: expected name or list of names", node.Line)
	}
}

// GridMemberName is the name of the n-th object generated by a group grid.
func GridMemberName(group string, n int) string {
	return fmt.Sprintf("%s-%d", group, n)
}
