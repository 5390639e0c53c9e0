package pack

import (
	"sort"
	"strings"
)

// treeNode is one entry in the rendered directory tree.
type treeNode struct {
	name     string
	children map[string]*treeNode
	isFile   bool
}

func newTreeNode(name string) *treeNode {
	return &treeNode{name: name, children: map[string]*treeNode{}}
}

func (n *treeNode) insert(path string) {
	parts := strings.Split(path, "/")
	cur := n
	for i, part := range parts {
		child, ok := cur.children[part]
		if !ok {
			child = newTreeNode(part)
			cur.children[part] = child
		}
		if i == len(parts)-1 {
			child.isFile = true
		}
		cur = child
	}
}

// sortedChildren returns directories first, then files, each sorted
// alphabetically.
func (n *treeNode) sortedChildren() []*treeNode {
	out := make([]*treeNode, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].isFile != out[j].isFile {
			return !out[i].isFile
		}
		return out[i].name < out[j].name
	})
	return out
}

// renderTree draws a box-drawing directory tree for the given
// repo-relative paths, rooted at root.
func renderTree(root string, paths []string) string {
	tree := newTreeNode(root)
	for _, p := range paths {
		tree.insert(p)
	}

	var sb strings.Builder
	sb.WriteString(root + "/\n")
	renderChildren(&sb, tree, "")
	return sb.String()
}

func renderChildren(sb *strings.Builder, n *treeNode, prefix string) {
	children := n.sortedChildren()
	for i, child := range children {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}

		sb.WriteString(prefix + connector + child.name)
		if !child.isFile {
			sb.WriteString("/")
		}
		sb.WriteString("\n")
		renderChildren(sb, child, childPrefix)
	}
}
