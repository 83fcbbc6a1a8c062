// Package rtree implements a bulk-loadable R-tree for 2D bounding boxes.
//
// The tree follows the rbush layout: leaves hold items, internal nodes hold
// child nodes, inserts use least-enlargement subtree selection with a
// margin-driven split, and Load builds packed nodes with the OMT algorithm.
// Each item remembers the box it was indexed with, so Remove works after the
// item has moved.
package rtree

import (
	"math"
	"sort"
)

// BBox is an axis-aligned bounding box given by its min/max corners.
type BBox struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// emptyBBox returns an inverted box that any extend will overwrite.
func emptyBBox() BBox {
	return BBox{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// Intersects reports whether two boxes overlap. Touching edges count.
func (b BBox) Intersects(o BBox) bool {
	return o.MinX <= b.MaxX && o.MinY <= b.MaxY && o.MaxX >= b.MinX && o.MaxY >= b.MinY
}

// Contains reports whether o lies entirely within b.
func (b BBox) Contains(o BBox) bool {
	return b.MinX <= o.MinX && b.MinY <= o.MinY && o.MaxX <= b.MaxX && o.MaxY <= b.MaxY
}

func (b *BBox) extend(o BBox) {
	b.MinX = math.Min(b.MinX, o.MinX)
	b.MinY = math.Min(b.MinY, o.MinY)
	b.MaxX = math.Max(b.MaxX, o.MaxX)
	b.MaxY = math.Max(b.MaxY, o.MaxY)
}

func (b BBox) area() float64 {
	return (b.MaxX - b.MinX) * (b.MaxY - b.MinY)
}

func (b BBox) margin() float64 {
	return (b.MaxX - b.MinX) + (b.MaxY - b.MinY)
}

func (b BBox) enlargedArea(o BBox) float64 {
	return (math.Max(o.MaxX, b.MaxX) - math.Min(o.MinX, b.MinX)) *
		(math.Max(o.MaxY, b.MaxY) - math.Min(o.MinY, b.MinY))
}

func (b BBox) intersectionArea(o BBox) float64 {
	minX := math.Max(b.MinX, o.MinX)
	minY := math.Max(b.MinY, o.MinY)
	maxX := math.Min(b.MaxX, o.MaxX)
	maxY := math.Min(b.MaxY, o.MaxY)
	return math.Max(0, maxX-minX) * math.Max(0, maxY-minY)
}

// node is either an internal node, a leaf, or an item wrapper (height 0).
type node[T comparable] struct {
	box      BBox
	children []*node[T]
	height   int
	leaf     bool
	item     T
}

func newNode[T comparable](children []*node[T]) *node[T] {
	return &node[T]{
		box:      emptyBBox(),
		children: children,
		height:   1,
		leaf:     true,
	}
}

func (n *node[T]) calcBBox() {
	n.box = distBBox(n, 0, len(n.children))
}

func distBBox[T comparable](n *node[T], k, p int) BBox {
	b := emptyBBox()
	for i := k; i < p; i++ {
		b.extend(n.children[i].box)
	}
	return b
}

// Tree is an R-tree over comparable items. It is not safe for concurrent use.
type Tree[T comparable] struct {
	maxEntries int
	minEntries int
	bounds     func(T) BBox
	root       *node[T]
	index      map[T]BBox
}

// New creates an empty tree with the given node fanout. bounds reports the
// current box of an item and is consulted on Insert and Load.
func New[T comparable](maxEntries int, bounds func(T) BBox) *Tree[T] {
	if maxEntries < 4 {
		maxEntries = 4
	}
	t := &Tree[T]{
		maxEntries: maxEntries,
		minEntries: max(2, int(math.Ceil(float64(maxEntries)*0.4))),
		bounds:     bounds,
	}
	t.Clear()
	return t
}

// Len returns the number of indexed items.
func (t *Tree[T]) Len() int {
	return len(t.index)
}

// Has reports whether item is indexed.
func (t *Tree[T]) Has(item T) bool {
	_, ok := t.index[item]
	return ok
}

// Clear removes every item.
func (t *Tree[T]) Clear() {
	t.root = newNode[T](nil)
	t.index = make(map[T]BBox)
}

// All returns every indexed item.
func (t *Tree[T]) All() []T {
	return t.all(t.root, nil)
}

func (t *Tree[T]) all(n *node[T], result []T) []T {
	stack := []*node[T]{}
	for n != nil {
		if n.leaf {
			for _, c := range n.children {
				result = append(result, c.item)
			}
		} else {
			stack = append(stack, n.children...)
		}
		if len(stack) == 0 {
			break
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}
	return result
}

// Search returns every item whose indexed box intersects box.
func (t *Tree[T]) Search(box BBox) []T {
	n := t.root
	var result []T
	if !box.Intersects(n.box) {
		return result
	}

	var toSearch []*node[T]
	for n != nil {
		for _, child := range n.children {
			if !box.Intersects(child.box) {
				continue
			}
			switch {
			case n.leaf:
				result = append(result, child.item)
			case box.Contains(child.box):
				result = t.all(child, result)
			default:
				toSearch = append(toSearch, child)
			}
		}
		if len(toSearch) == 0 {
			break
		}
		n = toSearch[len(toSearch)-1]
		toSearch = toSearch[:len(toSearch)-1]
	}
	return result
}

// Collides reports whether any item intersects box.
func (t *Tree[T]) Collides(box BBox) bool {
	n := t.root
	if !box.Intersects(n.box) {
		return false
	}

	var toSearch []*node[T]
	for n != nil {
		for _, child := range n.children {
			if !box.Intersects(child.box) {
				continue
			}
			if n.leaf || box.Contains(child.box) {
				return true
			}
			toSearch = append(toSearch, child)
		}
		if len(toSearch) == 0 {
			break
		}
		n = toSearch[len(toSearch)-1]
		toSearch = toSearch[:len(toSearch)-1]
	}
	return false
}

// Insert indexes a single item. Inserting an already indexed item re-indexes
// it with its current bounds.
func (t *Tree[T]) Insert(item T) {
	if _, ok := t.index[item]; ok {
		t.Remove(item)
	}
	box := t.bounds(item)
	t.index[item] = box
	t.insert(&node[T]{box: box, item: item}, t.root.height-1)
}

// Load bulk-inserts items. Much faster than repeated Insert for large sets,
// and produces better packed nodes.
func (t *Tree[T]) Load(items []T) {
	if len(items) == 0 {
		return
	}

	wrapped := make([]*node[T], 0, len(items))
	for _, item := range items {
		if _, ok := t.index[item]; ok {
			t.Remove(item)
		}
		box := t.bounds(item)
		t.index[item] = box
		wrapped = append(wrapped, &node[T]{box: box, item: item})
	}

	if len(wrapped) < t.minEntries {
		for _, w := range wrapped {
			t.insert(w, t.root.height-1)
		}
		return
	}

	n := t.build(wrapped, 0, len(wrapped)-1, 0)

	switch {
	case len(t.root.children) == 0:
		t.root = n
	case t.root.height == n.height:
		t.splitRoot(t.root, n)
	default:
		if t.root.height < n.height {
			t.root, n = n, t.root
		}
		t.insert(n, t.root.height-n.height-1)
	}
}

// Remove drops item from the tree. Returns false if it was not indexed.
func (t *Tree[T]) Remove(item T) bool {
	box, ok := t.index[item]
	if !ok {
		return false
	}
	delete(t.index, item)

	n := t.root
	var path []*node[T]
	var indexes []int
	var parent *node[T]
	i := 0
	goingUp := false

	for n != nil || len(path) > 0 {
		if n == nil {
			n = path[len(path)-1]
			path = path[:len(path)-1]
			if len(path) > 0 {
				parent = path[len(path)-1]
			} else {
				parent = nil
			}
			i = indexes[len(indexes)-1]
			indexes = indexes[:len(indexes)-1]
			goingUp = true
		}

		if n.leaf {
			for idx, c := range n.children {
				if c.item == item {
					n.children = append(n.children[:idx], n.children[idx+1:]...)
					path = append(path, n)
					t.condense(path)
					return true
				}
			}
		}

		switch {
		case !goingUp && !n.leaf && n.box.Contains(box):
			path = append(path, n)
			indexes = append(indexes, i)
			i = 0
			parent = n
			n = n.children[0]
		case parent != nil:
			i++
			if i < len(parent.children) {
				n = parent.children[i]
			} else {
				n = nil
			}
			goingUp = false
		default:
			n = nil
		}
	}
	return false
}

func (t *Tree[T]) build(items []*node[T], left, right, height int) *node[T] {
	count := right - left + 1
	m := t.maxEntries

	if count <= m {
		children := make([]*node[T], count)
		copy(children, items[left:right+1])
		n := newNode(children)
		n.calcBBox()
		return n
	}

	if height == 0 {
		height = int(math.Ceil(math.Log(float64(count)) / math.Log(float64(m))))
		m = int(math.Ceil(float64(count) / math.Pow(float64(m), float64(height-1))))
	}

	n := newNode[T](nil)
	n.leaf = false
	n.height = height

	n2 := int(math.Ceil(float64(count) / float64(m)))
	n1 := n2 * int(math.Ceil(math.Sqrt(float64(m))))

	sortRange(items, left, right, byMinX[T])

	for i := left; i <= right; i += n1 {
		right2 := min(i+n1-1, right)
		sortRange(items, i, right2, byMinY[T])

		for j := i; j <= right2; j += n2 {
			right3 := min(j+n2-1, right2)
			n.children = append(n.children, t.build(items, j, right3, height-1))
		}
	}

	n.calcBBox()
	return n
}

func (t *Tree[T]) chooseSubtree(box BBox, n *node[T], level int, path []*node[T]) (*node[T], []*node[T]) {
	for {
		path = append(path, n)
		if n.leaf || len(path)-1 == level {
			break
		}

		minArea := math.Inf(1)
		minEnlargement := math.Inf(1)
		var target *node[T]

		for _, child := range n.children {
			area := child.box.area()
			enlargement := box.enlargedArea(child.box) - area

			if enlargement < minEnlargement {
				minEnlargement = enlargement
				if area < minArea {
					minArea = area
				}
				target = child
			} else if enlargement == minEnlargement && area < minArea {
				minArea = area
				target = child
			}
		}

		if target == nil {
			target = n.children[0]
		}
		n = target
	}
	return n, path
}

func (t *Tree[T]) insert(item *node[T], level int) {
	box := item.box
	n, path := t.chooseSubtree(box, t.root, level, nil)

	n.children = append(n.children, item)
	n.box.extend(box)

	// split on node overflow; propagate upwards if necessary
	for level >= 0 {
		if len(path[level].children) > t.maxEntries {
			t.split(path, level)
			level--
		} else {
			break
		}
	}

	for i := level; i >= 0; i-- {
		path[i].box.extend(box)
	}
}

func (t *Tree[T]) split(path []*node[T], level int) {
	n := path[level]
	total := len(n.children)
	m := t.minEntries

	t.chooseSplitAxis(n, m, total)
	at := t.chooseSplitIndex(n, m, total)

	moved := make([]*node[T], total-at)
	copy(moved, n.children[at:])
	n.children = n.children[:at]

	sibling := newNode(moved)
	sibling.height = n.height
	sibling.leaf = n.leaf

	n.calcBBox()
	sibling.calcBBox()

	if level > 0 {
		path[level-1].children = append(path[level-1].children, sibling)
	} else {
		t.splitRoot(n, sibling)
	}
}

func (t *Tree[T]) splitRoot(n, sibling *node[T]) {
	t.root = newNode([]*node[T]{n, sibling})
	t.root.height = n.height + 1
	t.root.leaf = false
	t.root.calcBBox()
}

func (t *Tree[T]) chooseSplitIndex(n *node[T], m, total int) int {
	index := -1
	minOverlap := math.Inf(1)
	minArea := math.Inf(1)

	for i := m; i <= total-m; i++ {
		b1 := distBBox(n, 0, i)
		b2 := distBBox(n, i, total)

		overlap := b1.intersectionArea(b2)
		area := b1.area() + b2.area()

		if overlap < minOverlap {
			minOverlap = overlap
			index = i
			if area < minArea {
				minArea = area
			}
		} else if overlap == minOverlap && area < minArea {
			minArea = area
			index = i
		}
	}

	if index <= 0 {
		return total - m
	}
	return index
}

// chooseSplitAxis sorts children by the best split axis.
func (t *Tree[T]) chooseSplitAxis(n *node[T], m, total int) {
	xMargin := t.allDistMargin(n, m, total, byMinX[T])
	yMargin := t.allDistMargin(n, m, total, byMinY[T])

	// if total distributions margin value is minimal for x, sort by minX,
	// otherwise it's already sorted by minY
	if xMargin < yMargin {
		sortRange(n.children, 0, len(n.children)-1, byMinX[T])
	}
}

func (t *Tree[T]) allDistMargin(n *node[T], m, total int, less func(a, b *node[T]) bool) float64 {
	sortRange(n.children, 0, len(n.children)-1, less)

	left := distBBox(n, 0, m)
	right := distBBox(n, total-m, total)
	margin := left.margin() + right.margin()

	for i := m; i < total-m; i++ {
		left.extend(n.children[i].box)
		margin += left.margin()
	}

	for i := total - m - 1; i >= m; i-- {
		right.extend(n.children[i].box)
		margin += right.margin()
	}

	return margin
}

func (t *Tree[T]) condense(path []*node[T]) {
	for i := len(path) - 1; i >= 0; i-- {
		if len(path[i].children) > 0 {
			path[i].calcBBox()
			continue
		}
		if i == 0 {
			t.root = newNode[T](nil)
			continue
		}
		siblings := path[i-1].children
		for idx, s := range siblings {
			if s == path[i] {
				path[i-1].children = append(siblings[:idx], siblings[idx+1:]...)
				break
			}
		}
	}
}

func byMinX[T comparable](a, b *node[T]) bool { return a.box.MinX < b.box.MinX }
func byMinY[T comparable](a, b *node[T]) bool { return a.box.MinY < b.box.MinY }

// sortRange sorts items[left..right] inclusive. Stable so that equal keys
// keep insertion order and rebuilds stay deterministic.
func sortRange[T comparable](items []*node[T], left, right int, less func(a, b *node[T]) bool) {
	if right <= left {
		return
	}
	sub := items[left : right+1]
	sort.SliceStable(sub, func(i, j int) bool {
		return less(sub[i], sub[j])
	})
}
