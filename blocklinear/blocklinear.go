// Package blocklinear converts images between row-major (pitch) layout and the
// block-linear layout used by the scan-out engine.
//
// The atom of the layout is the GOB (group of bytes): 64 bytes wide and 8 rows
// tall, 512 bytes in total. GOBs are stacked vertically into blocks of
// 2^blockHeightLog2 GOBs. Blocks are stored column by column across a block row,
// and block rows are stored top to bottom.
//
// Inside a GOB the bytes are stored as 32 elements of 16 bytes in a fixed
// order that the hardware expects. Only the element order is permuted; each
// 16-byte element is a contiguous run of one source row.
package blocklinear

import "errors"

const (
	// GOBWidth is the width of a GOB in bytes.
	GOBWidth = 64
	// GOBHeight is the height of a GOB in rows.
	GOBHeight = 8
	// GOBSize is the size of a GOB in bytes.
	GOBSize = GOBWidth * GOBHeight

	// DefaultBlockHeightLog2 is the block height used by the display engine
	// for scan-out surfaces (16 GOBs, 128 rows).
	DefaultBlockHeightLog2 = 4
	// MaxBlockHeightLog2 is the largest supported block height (32 GOBs).
	MaxBlockHeightLog2 = 5

	elemSize = 16
	gobElems = GOBSize / elemSize
)

var (
	ErrBadStride      = errors.New("blocklinear: stride is not a multiple of 64")
	ErrBadBlockHeight = errors.New("blocklinear: block height out of range")
	ErrShortBuffer    = errors.New("blocklinear: buffer too small")
)

type elem struct {
	x int // byte column inside the GOB
	y int // row inside the GOB
}

// gobOrder[i] is the GOB-relative source position of the i-th 16-byte element.
var gobOrder = func() (t [gobElems]elem) {
	for i := 0; i < gobElems; i++ {
		t[i] = elem{
			x: ((i << 3) & 0x10) | ((i << 1) & 0x20),
			y: ((i >> 1) & 0x6) | (i & 0x1),
		}
	}
	return t
}()

// BlockRows returns the number of rows covered by one block.
func BlockRows(blockHeightLog2 uint32) uint32 {
	return GOBHeight << blockHeightLog2
}

// AlignedHeight rounds height up to a whole number of blocks.
func AlignedHeight(height, blockHeightLog2 uint32) uint32 {
	rows := BlockRows(blockHeightLog2)
	return (height + rows - 1) / rows * rows
}

// AlignStride rounds a row pitch in bytes up to a whole number of GOBs.
func AlignStride(stride uint32) uint32 {
	return (stride + GOBWidth - 1) &^ (GOBWidth - 1)
}

// Size returns the number of bytes a block-linear image of the given pitch and
// height occupies. It equals stride*AlignedHeight(height).
func Size(stride, height, blockHeightLog2 uint32) int {
	return int(stride) * int(AlignedHeight(height, blockHeightLog2))
}

func check(tiledLen, linearLen int, stride, height, blockHeightLog2 uint32) error {
	if stride%GOBWidth != 0 {
		return ErrBadStride
	}
	if blockHeightLog2 > MaxBlockHeightLog2 {
		return ErrBadBlockHeight
	}
	n := Size(stride, height, blockHeightLog2)
	if tiledLen < n || linearLen < n {
		return ErrShortBuffer
	}
	return nil
}

// Encode converts the pitch-linear image in src into block-linear layout in dst.
//
// Both buffers must hold at least Size(stride, height, blockHeightLog2) bytes.
// GOBs whose first row is at or below height are left untouched in dst.
func Encode(dst, src []byte, stride, height, blockHeightLog2 uint32) error {
	if err := check(len(dst), len(src), stride, height, blockHeightLog2); err != nil {
		return err
	}
	walk(stride, height, blockHeightLog2, func(tiled, linear int) {
		encodeGOB(dst[tiled:tiled+GOBSize], src[linear:], int(stride))
	})
	return nil
}

// Decode is the inverse of Encode.
func Decode(dst, src []byte, stride, height, blockHeightLog2 uint32) error {
	if err := check(len(src), len(dst), stride, height, blockHeightLog2); err != nil {
		return err
	}
	walk(stride, height, blockHeightLog2, func(tiled, linear int) {
		decodeGOB(dst[linear:], src[tiled:tiled+GOBSize], int(stride))
	})
	return nil
}

// walk calls fn with the tiled and linear byte offsets of every visible GOB.
func walk(stride, height, blockHeightLog2 uint32, fn func(tiled, linear int)) {
	gobsPerBlock := uint32(1) << blockHeightLog2
	rows := BlockRows(blockHeightLog2)
	widthBlocks := stride / GOBWidth
	heightBlocks := (height + rows - 1) / rows

	tiled := 0
	for by := uint32(0); by < heightBlocks; by++ {
		for bx := uint32(0); bx < widthBlocks; bx++ {
			for gy := uint32(0); gy < gobsPerBlock; gy++ {
				y := by*rows + gy*GOBHeight
				if y < height {
					fn(tiled, int(y*stride+bx*GOBWidth))
				}
				tiled += GOBSize
			}
		}
	}
}

func encodeGOB(out, in []byte, stride int) {
	for i, e := range gobOrder {
		s := e.y*stride + e.x
		copy(out[i*elemSize:(i+1)*elemSize], in[s:s+elemSize])
	}
}

func decodeGOB(out, in []byte, stride int) {
	for i, e := range gobOrder {
		d := e.y*stride + e.x
		copy(out[d:d+elemSize], in[i*elemSize:(i+1)*elemSize])
	}
}

// GOBOffset returns the block-linear byte offset of the byte at column x
// (in bytes) of row y.
func GOBOffset(x, y, stride, blockHeightLog2 uint32) int {
	gobsPerBlock := uint32(1) << blockHeightLog2
	rows := BlockRows(blockHeightLog2)
	widthBlocks := stride / GOBWidth

	by, bx := y/rows, x/GOBWidth
	gy := (y % rows) / GOBHeight
	gob := (by*widthBlocks+bx)*gobsPerBlock + gy

	// Invert gobOrder: row bits y0,y1,y2 and column bits x4,x5 pick the element.
	ix, iy := x%GOBWidth, y%GOBHeight
	i := (iy & 1) | (iy&6)<<1 | (ix&0x10)>>3 | (ix&0x20)>>1
	return int(gob)*GOBSize + int(i)*elemSize + int(ix&0xF)
}
