// instruction.go defines the per-function linear IR that the parser
// produces and the type checker and code generator consume.
//
// This plays the role the teacher's instructions package played for its
// RPN operators, generalized from "push a number, apply an arithmetic
// op" to the full statement/expression IR the language needs: variable
// declaration and access, invocation, address-of, control flow and
// return.

package ast

// Kind holds the kind of an Instruction.
type Kind byte

const (
	// Integer pushes an integer literal.
	Integer Kind = 'i'

	// Boolean pushes a boolean literal.
	Boolean Kind = 'b'

	// String pushes the address of a string literal.
	String Kind = 's'

	// Long pushes the NumberSplit pair as a single "long" value.
	Long Kind = 'l'

	// Retrieve pushes the value of a parameter, local or constant.
	Retrieve Kind = 'r'

	// Assign pops the top of stack into a local.
	Assign Kind = 'a'

	// Declare introduces a local name with a type, without pushing
	// anything.
	Declare Kind = 'd'

	// Invoke calls a function, consuming its declared parameters and
	// producing its declared returns.
	Invoke Kind = 'c'

	// Pointer promotes the type of the immediately preceding
	// Retrieve/Invoke from T to *T, and marks that instruction to
	// generate an address instead of a copy.
	Pointer Kind = 'p'

	// Return pops the declared return values and leaves the function.
	Return Kind = 'R'

	// Target marks a jump destination.
	Target Kind = 'T'

	// Jump is an unconditional branch to a Target.
	Jump Kind = 'J'

	// ConditionalJump pops a boolean and branches to a Target if it
	// matches WantsTrue.
	ConditionalJump Kind = 'C'
)

// Instruction is a single IR op. Only the fields relevant to Kind are
// populated; see the Kind constants above for which.
type Instruction struct {
	Kind Kind

	IntValue  int64
	BoolValue bool
	StrValue  string
	LongA     int64
	LongB     int64

	// Name holds the target of Retrieve/Assign/Declare/Invoke.
	Name string

	// DeclType holds the declared type of a Declare instruction.
	DeclType string

	// TargetID holds the jump-target id of Target/Jump/ConditionalJump.
	TargetID int

	// WantsTrue holds the required boolean value for ConditionalJump.
	WantsTrue bool
}

func NewInteger(n int64) Instruction          { return Instruction{Kind: Integer, IntValue: n} }
func NewBoolean(b bool) Instruction           { return Instruction{Kind: Boolean, BoolValue: b} }
func NewString(s string) Instruction          { return Instruction{Kind: String, StrValue: s} }
func NewLong(a, b int64) Instruction          { return Instruction{Kind: Long, LongA: a, LongB: b} }
func NewRetrieve(name string) Instruction     { return Instruction{Kind: Retrieve, Name: name} }
func NewAssign(name string) Instruction       { return Instruction{Kind: Assign, Name: name} }
func NewInvoke(name string) Instruction       { return Instruction{Kind: Invoke, Name: name} }
func NewPointerOp() Instruction               { return Instruction{Kind: Pointer} }
func NewReturnOp() Instruction                { return Instruction{Kind: Return} }
func NewTarget(id int) Instruction            { return Instruction{Kind: Target, TargetID: id} }
func NewJump(id int) Instruction              { return Instruction{Kind: Jump, TargetID: id} }

func NewDeclare(name, typ string) Instruction {
	return Instruction{Kind: Declare, Name: name, DeclType: typ}
}

func NewConditionalJump(wantsTrue bool, id int) Instruction {
	return Instruction{Kind: ConditionalJump, WantsTrue: wantsTrue, TargetID: id}
}
