package sic

import (
	"fmt"
	"strings"

	"github.com/c360studio/sicindex/meta"
)

// Node holds all data associated with one classification code. The
// hierarchy is a forest with each section as a root; Parent is nil for
// section nodes and Children is ordered as the rows arrived.
//
// Nodes are wired, given metadata and given activities by Build and
// must be treated as read-only afterwards.
type Node struct {
	Code        Code
	Description string

	// Activities lists free-text activity descriptions from the
	// classification index, in source order. Only class and subclass
	// nodes receive activities.
	Activities []string

	// Meta is the cleaned metadata record for this code, nil until
	// attached.
	Meta *meta.Record

	Parent   *Node
	Children []*Node
}

func (n *Node) String() string {
	return fmt.Sprintf("%s: %q", n.Code, n.Description)
}

// IsLeaf reports whether the node has no children, i.e. it is the most
// granular classification on its branch.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// NumericStringPadded returns the numeric code as the five-digit string
// used by activity indexes: a leaf class gets a trailing zero, a
// subclass is returned as-is.
func (n *Node) NumericStringPadded() string {
	numeric := n.Code.Digits()
	if n.Code.NDigits() == 4 && n.IsLeaf() {
		numeric += "0"
	}
	return numeric
}

// Details renders a multi-line summary of the node: code, description,
// lineage, metadata and activities.
func (n *Node) Details() string {
	var sb strings.Builder

	sb.WriteString(n.String() + "\n")
	fmt.Fprintf(&sb, "Level: %s\n", n.Code.LevelName())
	fmt.Fprintf(&sb, "Section: %s\n", n.Code.Section())

	if n.Parent != nil {
		fmt.Fprintf(&sb, "Parent: %s\n", n.Parent)
	} else {
		sb.WriteString("Parent: none\n")
	}

	if len(n.Children) > 0 {
		sb.WriteString("Children:\n")
		for _, child := range n.Children {
			fmt.Fprintf(&sb, "  - %s\n", child)
		}
	}

	if n.Meta != nil {
		if n.Meta.Detail != "" {
			fmt.Fprintf(&sb, "Detail: %s\n", n.Meta.Detail)
		}
		if len(n.Meta.Includes) > 0 {
			sb.WriteString("Includes:\n")
			for _, inc := range n.Meta.Includes {
				fmt.Fprintf(&sb, "  - %s\n", inc)
			}
		}
		if len(n.Meta.Excludes) > 0 {
			sb.WriteString("Excludes:\n")
			for _, exc := range n.Meta.Excludes {
				fmt.Fprintf(&sb, "  - %s\n", exc)
			}
		}
	}

	if len(n.Activities) > 0 {
		sb.WriteString("Activities:\n")
		for _, activity := range n.Activities {
			fmt.Fprintf(&sb, "  - %s\n", activity)
		}
	}

	return sb.String()
}
