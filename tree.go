package codehuff

import (
	"fmt"
	"io"
	"strings"

	"github.com/seiflotfy/codehuff/internal/heap"
)

const noChild = -1

// node is a tree node stored in the Tree arena. Leaves have
// left == right == noChild.
type node struct {
	symbol      string
	freq        int64
	left, right int32
}

func (n *node) leaf() bool { return n.left == noChild }

// Tree is a Huffman tree. Nodes live in a single arena and refer to
// their children by index; every node except the root has exactly one
// parent.
//
// Leaves occupy indices 0..k-1 in canonical symbol order and internal
// nodes follow in creation order, so a node's index doubles as its
// tie-break rank.
type Tree struct {
	nodes  []node
	root   int32
	leaves int
}

// BuildTree builds the Huffman tree for t.
//
// Nodes are merged lowest frequency first; equal frequencies are
// ordered by rank, leaves in canonical order before internal nodes in
// creation order. The first node taken becomes the left child. Building
// twice from equal tables yields identical trees.
func BuildTree(t *FrequencyTable) (*Tree, error) {
	if t.Len() == 0 {
		return nil, ErrEmptyTable
	}
	syms := t.Symbols()
	k := len(syms)
	tr := &Tree{
		nodes:  make([]node, 0, 2*k-1),
		leaves: k,
	}
	for _, sym := range syms {
		tr.nodes = append(tr.nodes, node{symbol: sym, freq: t.counts[sym], left: noChild, right: noChild})
	}

	less := func(a, b int32) bool {
		fa, fb := tr.nodes[a].freq, tr.nodes[b].freq
		if fa != fb {
			return fa < fb
		}
		return a < b
	}
	queue := make([]int32, k)
	for i := range queue {
		queue[i] = int32(i)
	}
	heap.Order(queue, less)

	for len(queue) > 1 {
		left := heap.Pop(&queue, less)
		right := heap.Pop(&queue, less)
		parent := int32(len(tr.nodes))
		tr.nodes = append(tr.nodes, node{
			freq:  tr.nodes[left].freq + tr.nodes[right].freq,
			left:  left,
			right: right,
		})
		heap.Push(&queue, parent, less)
	}
	tr.root = queue[0]
	return tr, nil
}

// Len returns the number of leaves, which is the number of symbols.
func (tr *Tree) Len() int { return tr.leaves }

// Weight returns the frequency at the root: the sum of all counts.
func (tr *Tree) Weight() int64 { return tr.nodes[tr.root].freq }

// Symbols returns the leaf symbols in canonical order.
func (tr *Tree) Symbols() []string {
	syms := make([]string, tr.leaves)
	for i := range syms {
		syms[i] = tr.nodes[i].symbol
	}
	return syms
}

// Codes derives the code of every symbol by walking from the root,
// appending 0 on the way left and 1 on the way right. A tree with a
// single leaf gives that symbol the one-bit code "0".
func (tr *Tree) Codes() (CodeTable, error) {
	codes := make(CodeTable, tr.leaves)
	root := &tr.nodes[tr.root]
	if root.leaf() {
		codes[root.symbol] = Code{Bits: 0, Len: 1}
		return codes, nil
	}
	if err := tr.assign(codes, tr.root, Code{}); err != nil {
		return nil, err
	}
	return codes, nil
}

func (tr *Tree) assign(codes CodeTable, idx int32, prefix Code) error {
	n := &tr.nodes[idx]
	if n.leaf() {
		codes[n.symbol] = prefix
		return nil
	}
	if prefix.Len == maxCodeLen {
		return fmt.Errorf("%w: deeper than %d bits", ErrCodeTooLong, maxCodeLen)
	}
	if err := tr.assign(codes, n.left, prefix.append(0)); err != nil {
		return err
	}
	return tr.assign(codes, n.right, prefix.append(1))
}

// walker steps through the tree one bit at a time.
type walker struct {
	tr  *Tree
	pos int32
}

func (tr *Tree) walker() walker { return walker{tr: tr, pos: tr.root} }

// step follows bit from the current position. It returns the symbol
// and true when a leaf is reached, after which the walk restarts at
// the root.
func (w *walker) step(bit bool) (string, bool, error) {
	n := &w.tr.nodes[w.pos]
	if n.leaf() {
		// single-leaf tree: the only code is "0"
		if bit {
			return "", false, ErrInvalidCode
		}
		return n.symbol, true, nil
	}
	if bit {
		w.pos = n.right
	} else {
		w.pos = n.left
	}
	if n = &w.tr.nodes[w.pos]; n.leaf() {
		w.pos = w.tr.root
		return n.symbol, true, nil
	}
	return "", false, nil
}

// atRoot reports whether the walk is between codes.
func (w *walker) atRoot() bool { return w.pos == w.tr.root }

// Dump writes an indented listing of the tree to w.
func (tr *Tree) Dump(w io.Writer) error {
	var sb strings.Builder
	tr.dump(&sb, tr.root, 0, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func (tr *Tree) dump(sb *strings.Builder, idx int32, depth int, edge string) {
	n := &tr.nodes[idx]
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(edge)
	if n.leaf() {
		fmt.Fprintf(sb, "leaf %q (freq %d)\n", n.symbol, n.freq)
		return
	}
	fmt.Fprintf(sb, "node (freq %d)\n", n.freq)
	tr.dump(sb, n.left, depth+1, "0: ")
	tr.dump(sb, n.right, depth+1, "1: ")
}
