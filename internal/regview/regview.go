// Package regview provides read-only, bounds-checked accessors over the
// compact binary document produced by the stage-A XML-to-binary converter
// (out of scope here; see original_source/XmlBinGenerator.cpp for its
// writer). The document is a header of five segments (interned strings, a
// sorted-then-Eytzinger unique-string index, nodes, attributes, elements)
// followed by the segment payloads. Every accessor is pure: the document
// never mutates once opened.
package regview

import (
	"errors"
	"strings"

	"github.com/jamboree/vklitegen/internal/buf"
)

// ErrTruncated is returned when the input is too short to hold a valid
// header or a segment it claims to have.
var ErrTruncated = errors.New("regview: truncated binary document")

const segmentSize = 8 // {offset uint32, count uint32}
const headerSize = segmentSize * 5
const attributeSize = 8 // {name StrID, value StrID}
const elementSize = 20  // {tag StrID, attrs{start,count}, children{start,count}}

// StrID is a byte offset into the strings segment. 0 denotes the empty
// string (also used by callers as "absent" for optional attributes).
type StrID uint32

// ElemID is an index into the elements segment.
type ElemID uint32

// NodeKind distinguishes the two kinds of child a node can be.
type NodeKind uint32

const (
	NodeText NodeKind = iota
	NodeElement
)

// NodeID is a tagged (kind, index) value: bit 0 carries the kind, the
// remaining bits carry the index (a StrID for text, an ElemID for element).
type NodeID uint32

func (n NodeID) Kind() NodeKind { return NodeKind(n & 1) }
func (n NodeID) Index() uint32  { return uint32(n >> 1) }

func (n NodeID) AsText() StrID   { return StrID(n.Index()) }
func (n NodeID) AsElement() ElemID { return ElemID(n.Index()) }

type segment struct {
	offset uint32
	count  uint32
}

// Attribute is a single name/value pair on an element.
type Attribute struct {
	Name  StrID
	Value StrID
}

// Element is a tag plus a sorted (Eytzinger-laid) attribute run and an
// ordered child-node run.
type Element struct {
	Tag         StrID
	attrStart   uint32
	attrCount   uint32
	childStart  uint32
	childCount  uint32
}

// Context is the read-only, random-access document. It borrows every byte
// it hands out from the buffer passed to Open; callers must keep that
// buffer alive for the Context's lifetime.
type Context struct {
	data          []byte
	strings       segment
	uniqueStrings segment
	nodes         segment
	attrs         segment
	elems         segment
}

// Open validates the header of data and returns a Context borrowing it.
func Open(data []byte) (*Context, error) {
	if len(data) < headerSize {
		return nil, ErrTruncated
	}
	readSeg := func(off int) segment {
		return segment{
			offset: buf.U32LE(data[off:]),
			count:  buf.U32LE(data[off+4:]),
		}
	}
	ctx := &Context{
		data:          data,
		strings:       readSeg(0),
		uniqueStrings: readSeg(segmentSize),
		nodes:         readSeg(segmentSize * 2),
		attrs:         readSeg(segmentSize * 3),
		elems:         readSeg(segmentSize * 4),
	}
	if !buf.Has(data, int(ctx.strings.offset), int(ctx.strings.count)) {
		return nil, ErrTruncated
	}
	if !buf.Has(data, int(ctx.uniqueStrings.offset), int(ctx.uniqueStrings.count+1)*4) {
		return nil, ErrTruncated
	}
	if !buf.Has(data, int(ctx.nodes.offset), int(ctx.nodes.count)*4) {
		return nil, ErrTruncated
	}
	if !buf.Has(data, int(ctx.attrs.offset), int(ctx.attrs.count)*attributeSize) {
		return nil, ErrTruncated
	}
	if !buf.Has(data, int(ctx.elems.offset), int(ctx.elems.count)*elementSize) {
		return nil, ErrTruncated
	}
	return ctx, nil
}

// GetString returns the NUL-terminated string at id.
func (c *Context) GetString(id StrID) string {
	base := int(c.strings.offset) + int(id)
	if base < 0 || base >= len(c.data) {
		return ""
	}
	end := base
	for end < len(c.data) && c.data[end] != 0 {
		end++
	}
	return string(c.data[base:end])
}

// GetOr returns GetString(id), or other when id is absent (zero).
func (c *Context) GetOr(id StrID, other string) string {
	if id == 0 {
		return other
	}
	return c.GetString(id)
}

func (c *Context) uniqueAt(k uint32) StrID {
	off := int(c.uniqueStrings.offset) + int(k)*4
	return StrID(buf.U32LE(c.data[off:]))
}

// GetUnique looks up str by value in the unique-string index in O(log N)
// using the Eytzinger layout, returning its interned StrID.
func (c *Context) GetUnique(str string) (StrID, bool) {
	n := c.uniqueStrings.count
	k := uint32(1)
	for k <= n {
		id := c.uniqueAt(k)
		cur := c.GetString(id)
		switch strings.Compare(cur, str) {
		case 0:
			return id, true
		case -1:
			k = k<<1 | 1
		default:
			k = k << 1
		}
	}
	return 0, false
}

// RootElement returns the document's root element (index 0), or false if
// the document has no elements at all.
func (c *Context) RootElement() (Element, bool) {
	if c.elems.count == 0 {
		return Element{}, false
	}
	return c.GetElement(0), true
}

// GetElement returns the element at idx.
func (c *Context) GetElement(idx ElemID) Element {
	off := int(c.elems.offset) + int(idx)*elementSize
	d := c.data[off:]
	return Element{
		Tag:        StrID(buf.U32LE(d)),
		attrStart:  buf.U32LE(d[4:]),
		attrCount:  buf.U32LE(d[8:]),
		childStart: buf.U32LE(d[12:]),
		childCount: buf.U32LE(d[16:]),
	}
}

// Attrs returns the sorted (Eytzinger) attribute run of e.
func (c *Context) Attrs(e Element) []Attribute {
	out := make([]Attribute, e.attrCount)
	base := int(c.attrs.offset) + int(e.attrStart)*attributeSize
	for i := range out {
		off := base + i*attributeSize
		out[i] = Attribute{
			Name:  StrID(buf.U32LE(c.data[off:])),
			Value: StrID(buf.U32LE(c.data[off+4:])),
		}
	}
	return out
}

// Children returns the ordered child-node run of e.
func (c *Context) Children(e Element) []NodeID {
	out := make([]NodeID, e.childCount)
	base := int(c.nodes.offset) + int(e.childStart)*4
	for i := range out {
		out[i] = NodeID(buf.U32LE(c.data[base+i*4:]))
	}
	return out
}

// FindAttr does a branchless Eytzinger binary search for nameID in attrs.
func FindAttr(attrs []Attribute, nameID StrID) (StrID, bool) {
	k := uint32(1)
	n := uint32(len(attrs))
	for k <= n {
		a := attrs[k-1]
		if a.Name == nameID {
			return a.Value, true
		}
		if a.Name < nameID {
			k = k<<1 | 1
		} else {
			k = k << 1
		}
	}
	return 0, false
}

// ChildElementText finds the first child element tagged tagID and returns
// its single text value, if any.
func (c *Context) ChildElementText(e Element, tagID StrID) (StrID, bool) {
	for _, n := range c.Children(e) {
		if n.Kind() != NodeElement {
			continue
		}
		child := c.GetElement(n.AsElement())
		if child.Tag == tagID {
			return c.GetText(child)
		}
	}
	return 0, false
}

// GetText returns e's single text-child value. It returns false if e has
// more than one child, or its one child isn't text.
func (c *Context) GetText(e Element) (StrID, bool) {
	children := c.Children(e)
	if len(children) != 1 || children[0].Kind() != NodeText {
		return 0, false
	}
	return children[0].AsText(), true
}
