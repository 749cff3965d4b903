package codegen

// prelude is the fixed FASM header (§4.4 item 1): format declaration,
// entry point, and the start trampoline that calls main and exits via
// syscall 60.
func prelude() string {
	return `format ELF64 executable
entry start

segment readable executable

start:
        call main
        mov rax, 60
        mov rdi, 1
        syscall

`
}

// printIntegerRoutine is the hand-rolled routine of §4.4 item 2: it
// formats a popped integer to decimal (with a trailing newline) and
// writes it to stdout with syscall 1. It is called like any ordinary
// function - "print_integer(n)" from source - so its body follows the
// same stack-frame and return-shuffle convention as a compiled
// function, even though its body is written directly as assembly
// rather than translated from IR.
//
// spec.md's §4.4.2 names this routine "@print_integer"; its own worked
// end-to-end example in §8 calls it from source as "print_integer",
// with no "@". The worked call site is normative here.
func printIntegerRoutine() string {
	body := `print_integer:
        push rbp
        mov rbp, rsp
        sub rsp, 48

        mov rax, [rbp+16]
        mov rcx, 10
        lea rdi, [rbp-1]
        mov byte [rdi], 10
        mov r8, 1
        mov r9, 0
        cmp rax, 0
        jge .print_integer_convert
        mov r9, 1
        neg rax
.print_integer_convert:
        xor rdx, rdx
        div rcx
        add dl, '0'
        dec rdi
        mov [rdi], dl
        inc r8
        test rax, rax
        jnz .print_integer_convert
        cmp r9, 0
        je .print_integer_done_sign
        dec rdi
        mov byte [rdi], '-'
        inc r8
.print_integer_done_sign:
        mov rsi, rdi
        mov rdx, r8
        mov rax, 1
        mov rdi, 1
        syscall
`
	return body + returnShuffle(8, 0) + "\n"
}

// printStringRoutine is the original prototype's "@print" (renamed
// @print_string, SUPPLEMENTED FEATURES): given (buffer *any, length
// integer), writes length bytes from buffer to stdout via syscall 1.
func printStringRoutine() string {
	out := escapeName("@print_string") + ":\n"
	out += "        push rbp\n"
	out += "        mov rbp, rsp\n"
	out += "        sub rsp, 16\n"
	out += "        mov rsi, [rbp+16]\n"
	out += "        mov rdx, [rbp+24]\n"
	out += "        mov rax, 1\n"
	out += "        mov rdi, 1\n"
	out += "        syscall\n"
	out += returnShuffle(16, 0)
	return out + "\n"
}

// lengthRoutine is the original prototype's "@length": given a
// NUL-terminated buffer, returns its length via repne scasb.
func lengthRoutine() string {
	out := escapeName("@length") + ":\n"
	out += "        push rbp\n"
	out += "        mov rbp, rsp\n"
	out += "        sub rsp, 16\n"
	out += "        mov rdi, [rbp+16]\n"
	out += "        xor rax, rax\n"
	out += "        mov rcx, -1\n"
	out += "        cld\n"
	out += "        repne scasb\n"
	out += "        not rcx\n"
	out += "        dec rcx\n"
	out += "        push rcx\n"
	out += returnShuffle(8, 8)
	return out + "\n"
}
