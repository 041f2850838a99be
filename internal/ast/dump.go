package ast

import (
	"bufio"
	"io"
)

const (
	dumpBranch = "├─ "
	dumpLast   = "╰─ "
	dumpPipe   = "│  "
	dumpSpace  = "   "
)

// Dump writes node and its descendants to w as a tree, one node per line,
// using each node's String form.
func Dump(w io.Writer, node Node) error {
	bw := bufio.NewWriter(w)
	dumpNode(bw, node, "", "")
	return bw.Flush()
}

func dumpNode(w *bufio.Writer, node Node, prefix, childPrefix string) {
	w.WriteString(prefix)
	w.WriteString(node.String())
	w.WriteByte('\n')

	children := node.Children()
	for i, child := range children {
		if i == len(children)-1 {
			dumpNode(w, child, childPrefix+dumpLast, childPrefix+dumpSpace)
		} else {
			dumpNode(w, child, childPrefix+dumpBranch, childPrefix+dumpPipe)
		}
	}
}
