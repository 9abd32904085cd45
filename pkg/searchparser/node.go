// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package searchparser

import (
	"fmt"
	"strings"
)

// --- Node Types & Constants ---

const (
	NodeTypeTerm = "term"
	NodeTypeAnd  = "and"
	NodeTypeOr   = "or"
	NodeTypeNot  = "not"
)

type Position struct {
	Start int // Start position in the input string
	End   int // End position in the input string
}

// Node is one node of a parsed query. Type selects which of the other
// fields are populated:
//
//	term: Term
//	and, or: Left, Right
//	not: Operand
//
// Nodes are never modified after the parser returns them.
type Node struct {
	Type     string   // NodeTypeTerm, NodeTypeAnd, NodeTypeOr, NodeTypeNot
	Position Position // Position in the source text
	Term     string   // Literal substring (only for term nodes)
	Left     *Node    // and/or only
	Right    *Node    // and/or only
	Operand  *Node    // not only
}

func MakeTermNode(term string) *Node {
	return &Node{Type: NodeTypeTerm, Term: term}
}

func makeBinaryNode(nodeType string, left *Node, right *Node) *Node {
	return &Node{
		Type:     nodeType,
		Left:     left,
		Right:    right,
		Position: Position{Start: left.Position.Start, End: right.Position.End},
	}
}

func MakeAndNode(left *Node, right *Node) *Node {
	return makeBinaryNode(NodeTypeAnd, left, right)
}

func MakeOrNode(left *Node, right *Node) *Node {
	return makeBinaryNode(NodeTypeOr, left, right)
}

func MakeNotNode(operand *Node) *Node {
	return &Node{Type: NodeTypeNot, Operand: operand, Position: operand.Position}
}

// Equal reports whether two trees have the same shape and terms.
// Source positions are ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Type != other.Type {
		return false
	}
	switch n.Type {
	case NodeTypeTerm:
		return n.Term == other.Term
	case NodeTypeAnd, NodeTypeOr:
		return n.Left.Equal(other.Left) && n.Right.Equal(other.Right)
	case NodeTypeNot:
		return n.Operand.Equal(other.Operand)
	default:
		return false
	}
}

// String renders the tree on one line, e.g. AND(TERM("a"), NOT(TERM("b")))
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type {
	case NodeTypeTerm:
		return fmt.Sprintf("TERM(%q)", n.Term)
	case NodeTypeAnd, NodeTypeOr:
		return fmt.Sprintf("%s(%s, %s)", strings.ToUpper(n.Type), n.Left.String(), n.Right.String())
	case NodeTypeNot:
		return fmt.Sprintf("NOT(%s)", n.Operand.String())
	default:
		return fmt.Sprintf("UNKNOWN(%s)", n.Type)
	}
}

// PrettyPrintMultiline returns an indented, one-node-per-line view of the tree
func PrettyPrintMultiline(n *Node) string {
	var sb strings.Builder
	prettyPrintWithIndent(&sb, n, 0)
	return strings.TrimSuffix(sb.String(), "\n")
}

func prettyPrintWithIndent(sb *strings.Builder, n *Node, indent int) {
	indentStr := strings.Repeat("  ", indent)
	if n == nil {
		sb.WriteString(indentStr + "<nil>\n")
		return
	}
	switch n.Type {
	case NodeTypeTerm:
		fmt.Fprintf(sb, "%sTERM: %q\n", indentStr, n.Term)
	case NodeTypeAnd, NodeTypeOr:
		sb.WriteString(indentStr + strings.ToUpper(n.Type) + "\n")
		prettyPrintWithIndent(sb, n.Left, indent+1)
		prettyPrintWithIndent(sb, n.Right, indent+1)
	case NodeTypeNot:
		sb.WriteString(indentStr + "NOT\n")
		prettyPrintWithIndent(sb, n.Operand, indent+1)
	default:
		sb.WriteString(indentStr + "UNKNOWN\n")
	}
}
