package codegen

import "strconv"

// escapeName rewrites a function or accessor name into a legal FASM
// symbol (§4.4 Name escaping): '-', '>', '<' and '*' carry no meaning
// to the assembler's symbol grammar, so each is replaced by the decimal
// ASCII code of that character. A symbol that would start with a digit
// after escaping gets a leading underscore.
func escapeName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		switch c := name[i]; c {
		case '-', '>', '<', '*':
			out = append(out, []byte(strconv.Itoa(int(c)))...)
		default:
			out = append(out, c)
		}
	}
	if len(out) > 0 && out[0] >= '0' && out[0] <= '9' {
		out = append([]byte{'_'}, out...)
	}
	return string(out)
}
