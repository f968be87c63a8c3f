// Package regviewtest builds the binary document regview.Open reads,
// directly in Go, for use as test fixtures. It plays the role
// original_source/XmlBinGenerator.cpp plays for production use (the
// stage-A XML-to-binary converter), but production code never imports
// it: stage A stays out of scope (spec.md §1) and is exercised here only
// so the rest of the pipeline has something to read in tests.
package regviewtest

import (
	"encoding/binary"
	"sort"
)

// Attr is a single attribute to attach to an Elem.
type Attr struct{ Name, Value string }

// Child is either a text node (Text != "") or an element node (Elem != nil).
type Child struct {
	Text string
	Elem *Elem
}

// Elem is an in-memory element tree node, the moral equivalent of the
// tinyxml2 element the real stage-A tool walks.
type Elem struct {
	Tag      string
	Attrs    []Attr
	Children []Child
}

// E builds an Elem.
func E(tag string, attrs []Attr, children ...Child) *Elem {
	return &Elem{Tag: tag, Attrs: attrs, Children: children}
}

// Txt builds a text Child.
func Txt(s string) Child { return Child{Text: s} }

// El builds an element Child.
func El(e *Elem) Child { return Child{Elem: e} }

type rawAttr struct{ name, value uint32 }

type rawElem struct {
	tag                    uint32
	attrStart, attrCount   uint32
	childStart, childCount uint32
}

type builder struct {
	strings       []byte
	uniqueByValue map[string]uint32 // string -> assigned offset
	uniqueOrder   []string          // sorted by value, in insertion order of the sort
	nodes         []uint32
	attrs         []rawAttr
	elems         []rawElem
}

func newBuilder() *builder {
	b := &builder{
		strings:       []byte{0}, // offset 0 is the empty-string sentinel
		uniqueByValue: map[string]uint32{},
	}
	return b
}

func (b *builder) getStr(s string) uint32 {
	if s == "" {
		return 0
	}
	id := uint32(len(b.strings))
	b.strings = append(b.strings, s...)
	b.strings = append(b.strings, 0)
	return id
}

func (b *builder) getUniqueStr(s string) uint32 {
	if id, ok := b.uniqueByValue[s]; ok {
		return id
	}
	id := b.getStr(s)
	b.uniqueByValue[s] = id
	// keep uniqueOrder sorted by value so the Eytzinger pass below can lay
	// it out directly, mirroring the lower_bound-insertion the real
	// builder does incrementally.
	i := sort.SearchStrings(b.uniqueOrder, s)
	b.uniqueOrder = append(b.uniqueOrder, "")
	copy(b.uniqueOrder[i+1:], b.uniqueOrder[i:])
	b.uniqueOrder[i] = s
	return id
}

func (b *builder) buildElem(e *Elem) uint32 {
	idx := uint32(len(b.elems))
	b.elems = append(b.elems, rawElem{}) // reserve slot, filled below

	tag := b.getUniqueStr(e.Tag)

	rawAttrs := make([]rawAttr, len(e.Attrs))
	for i, a := range e.Attrs {
		rawAttrs[i] = rawAttr{name: b.getUniqueStr(a.Name), value: b.getStr(a.Value)}
	}
	sort.Slice(rawAttrs, func(i, j int) bool { return rawAttrs[i].name < rawAttrs[j].name })

	attrStart := uint32(len(b.attrs))
	laidOut := make([]rawAttr, len(rawAttrs))
	eytzinger(uint32(len(rawAttrs)), func(k uint32, v rawAttr) { laidOut[k] = v }, rawAttrs)
	b.attrs = append(b.attrs, laidOut...)

	childStart := uint32(len(b.nodes))
	b.nodes = append(b.nodes, make([]uint32, len(e.Children))...)

	b.elems[idx] = rawElem{
		tag:        tag,
		attrStart:  attrStart,
		attrCount:  uint32(len(rawAttrs)),
		childStart: childStart,
		childCount: uint32(len(e.Children)),
	}

	for i, c := range e.Children {
		if c.Elem != nil {
			childIdx := b.buildElem(c.Elem)
			b.nodes[int(childStart)+i] = childIdx<<1 | 1 // NodeElement
		} else {
			strID := b.getStr(c.Text)
			b.nodes[int(childStart)+i] = strID << 1 // NodeText
		}
	}
	return idx
}

// eytzinger lays src (assumed sorted ascending) out into out via the
// classic implicit-tree recursion, 1-indexed (out[0] is left unused).
func eytzinger(n uint32, set func(k uint32, v rawAttr), src []rawAttr) {
	i := uint32(0)
	var rec func(k uint32)
	rec = func(k uint32) {
		if k > n {
			return
		}
		rec(k * 2)
		set(k-1, src[i])
		i++
		rec(k*2 + 1)
	}
	rec(1)
}

func align4(n int) int { return (n + 3) &^ 3 }

func putU32(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:], v)
}

// Build serializes root into the binary layout regview.Open expects.
func Build(root *Elem) []byte {
	b := newBuilder()
	b.buildElem(root)

	n := uint32(len(b.uniqueOrder))
	uniqueSlots := make([]uint32, n+1) // index 0 sentinel
	eytzingerU32(n, func(k uint32, v uint32) { uniqueSlots[k] = v }, b.uniqueOrder, b)

	const headerSize = 8 * 5
	stringsOff := headerSize
	stringsLen := len(b.strings)
	uniqueOff := align4(stringsOff + stringsLen)
	uniqueLen := len(uniqueSlots) * 4
	nodesOff := align4(uniqueOff + uniqueLen)
	nodesLen := len(b.nodes) * 4
	attrsOff := align4(nodesOff + nodesLen)
	attrsLen := len(b.attrs) * 8
	elemsOff := align4(attrsOff + attrsLen)
	elemsLen := len(b.elems) * 20

	out := make([]byte, elemsOff+elemsLen)
	putU32(out, 0, uint32(stringsOff))
	putU32(out, 4, uint32(stringsLen))
	putU32(out, 8, uint32(uniqueOff))
	putU32(out, 12, n)
	putU32(out, 16, uint32(nodesOff))
	putU32(out, 20, uint32(len(b.nodes)))
	putU32(out, 24, uint32(attrsOff))
	putU32(out, 28, uint32(len(b.attrs)))
	putU32(out, 32, uint32(elemsOff))
	putU32(out, 36, uint32(len(b.elems)))

	copy(out[stringsOff:], b.strings)
	for i, v := range uniqueSlots {
		putU32(out, uniqueOff+i*4, v)
	}
	for i, v := range b.nodes {
		putU32(out, nodesOff+i*4, v)
	}
	for i, a := range b.attrs {
		putU32(out, attrsOff+i*8, a.name)
		putU32(out, attrsOff+i*8+4, a.value)
	}
	for i, e := range b.elems {
		off := elemsOff + i*20
		putU32(out, off, e.tag)
		putU32(out, off+4, e.attrStart)
		putU32(out, off+8, e.attrCount)
		putU32(out, off+12, e.childStart)
		putU32(out, off+16, e.childCount)
	}
	return out
}

func eytzingerU32(n uint32, set func(k uint32, v uint32), src []string, b *builder) {
	i := uint32(0)
	var rec func(k uint32)
	rec = func(k uint32) {
		if k > n {
			return
		}
		rec(k * 2)
		set(k, b.uniqueByValue[src[i]])
		i++
		rec(k*2 + 1)
	}
	rec(1)
}
