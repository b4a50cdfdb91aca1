// File: pkg/tree/tree.go
package tree

import (
	"sort"
	"strings"
)

type node struct {
	name     string
	children map[string]*node
}

func (n *node) isDir() bool {
	return n.children != nil
}

// Render draws the slash-separated paths as a directory tree under rootName.
// Directories are listed before files, each group sorted case-insensitively,
// and carry a trailing slash.
func Render(rootName string, paths []string) string {
	root := &node{name: rootName, children: map[string]*node{}}
	for _, p := range paths {
		insert(root, strings.Split(strings.Trim(p, "/"), "/"))
	}

	var b strings.Builder
	b.WriteString(strings.TrimSuffix(rootName, "/") + "/\n")
	renderChildren(&b, root, "")
	return b.String()
}

func insert(parent *node, segments []string) {
	for i, seg := range segments {
		if seg == "" || seg == "." {
			continue
		}
		child, ok := parent.children[seg]
		if !ok {
			child = &node{name: seg}
			parent.children[seg] = child
		}
		if i < len(segments)-1 && child.children == nil {
			child.children = map[string]*node{}
		}
		parent = child
	}
}

func renderChildren(b *strings.Builder, n *node, prefix string) {
	entries := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		entries = append(entries, c)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir() != entries[j].isDir() {
			return entries[i].isDir()
		}
		li, lj := strings.ToLower(entries[i].name), strings.ToLower(entries[j].name)
		if li != lj {
			return li < lj
		}
		return entries[i].name < entries[j].name
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		b.WriteString(prefix + connector + entry.name)
		if entry.isDir() {
			b.WriteString("/\n")
			renderChildren(b, entry, prefix+extension)
			continue
		}
		b.WriteString("\n")
	}
}
