package codegen

import "fmt"

// returnShuffle emits the epilogue every compiled routine shares: the
// return values, already sitting contiguous at the top of the stack
// (R bytes, rounded up to 8), are copied into the slot the arguments
// used to occupy, so the caller finds them exactly where it pushed its
// arguments, with no further cleanup of its own to do (§4.4 Return).
//
// The saved frame pointer and return address are read into r14/r15
// before the copy runs, rather than re-read from [rbp]/[rbp+8]
// afterwards: when R exceeds paramsSize the destination slide can
// overwrite those two memory locations, and the spec leaves open how
// to handle that case. Capturing them in registers up front makes the
// shuffle correct regardless of how R and paramsSize compare, so the
// overlap is never actually read back from memory.
//
// The destination always lies above the source, so the words are copied
// highest first: where the two ranges overlap, every source word is read
// before it is overwritten.
func returnShuffle(paramsSize, returnSize int) string {
	out := "        mov r14, [rbp]\n"
	out += "        mov r15, [rbp+8]\n"

	dst := 16 + paramsSize - returnSize
	for off := returnSize - 8; off >= 0; off -= 8 {
		out += fmt.Sprintf("        mov rax, qword [rsp+%d]\n", off)
		out += fmt.Sprintf("        mov qword [rbp+%d+%d], rax\n", dst, off)
	}

	shift := 16 + paramsSize - returnSize
	out += "        mov rsp, rbp\n"
	if shift != 0 {
		out += fmt.Sprintf("        add rsp, %d\n", shift)
	}
	out += "        mov rbp, r14\n"
	out += "        jmp r15\n"
	return out
}
