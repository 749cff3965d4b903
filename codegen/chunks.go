package codegen

import "fmt"

// chunkSizes are the move granularities the generator knows how to
// emit, largest first. §7 names "8,4,2" as the handled granularities
// for non-multiple-of-8 sizing; the "byte" pseudo-op (any_1) extends
// that list down to 1.
var chunkSizes = []int{8, 4, 2, 1}

func chunkReg(size int) string {
	switch size {
	case 8:
		return "rax"
	case 4:
		return "eax"
	case 2:
		return "ax"
	default:
		return "al"
	}
}

func chunkWord(size int) string {
	switch size {
	case 8:
		return "qword"
	case 4:
		return "dword"
	case 2:
		return "word"
	default:
		return "byte"
	}
}

// copyChunks emits a straight-line sequence of load/store pairs copying
// total bytes from srcBase+offset to dstBase+offset, greedily using the
// largest chunk size that still fits the remaining count. srcBase and
// dstBase are complete FASM memory-operand base expressions, e.g.
// "rbp+16" or "rax".
func copyChunks(total int, srcBase, dstBase string) string {
	var out string
	off := 0
	for off < total {
		size := 1
		for _, s := range chunkSizes {
			if total-off >= s {
				size = s
				break
			}
		}
		reg := chunkReg(size)
		word := chunkWord(size)
		out += fmt.Sprintf("        mov %s, %s [%s+%d]\n", reg, word, srcBase, off)
		out += fmt.Sprintf("        mov %s [%s+%d], %s\n", word, dstBase, off, reg)
		off += size
	}
	return out
}
