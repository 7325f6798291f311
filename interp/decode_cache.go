package interp

import (
	"sync"

	"github.com/flashcore/avm2/class"
	"github.com/flashcore/avm2/opcodes"
)

// decodedBody is the per-method decode result cached alongside a
// *class.Body: the flat instruction slice plus a byte-offset index so
// branch targets and exception-table ranges (both byte offsets, per the
// ABC format) resolve to a slice index without re-scanning the code on
// every jump.
type decodedBody struct {
	ins      []opcodes.Instruction
	byOffset map[int]int
	codeLen  int
}

// offsetAfter returns the byte offset one instruction past ins[idx],
// used to resolve jump/if*/branch operands, which the format measures
// relative to the position immediately following the branch instruction.
func (d *decodedBody) offsetAfter(idx int) int {
	if idx+1 < len(d.ins) {
		return d.ins[idx+1].Offset
	}
	return d.codeLen
}

// indexAt maps a byte offset to its instruction index, used for both
// branch targets and exception-handler targets/ranges.
func (d *decodedBody) indexAt(offset int) (int, bool) {
	idx, ok := d.byOffset[offset]
	return idx, ok
}

var bodyCache sync.Map // *class.Body -> *decodedBody

func decodeBody(b *class.Body) (*decodedBody, error) {
	if cached, ok := bodyCache.Load(b); ok {
		return cached.(*decodedBody), nil
	}
	ins, err := opcodes.Decode(b.Code)
	if err != nil {
		return nil, err
	}
	db := &decodedBody{
		ins:      ins,
		byOffset: make(map[int]int, len(ins)),
		codeLen:  len(b.Code),
	}
	for i, in := range ins {
		db.byOffset[in.Offset] = i
	}
	bodyCache.Store(b, db)
	return db, nil
}
