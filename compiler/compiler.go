// The compiler-package contains the core of our compiler.
//
// In brief we go through a four-step process:
//
//  1. Lex every source file and concatenate their token streams.
//
//  2. Parse the joined stream into a program model: functions,
//     structures (with synthesized accessors), and constants.
//
//  3. Type-check the program model.
//
//  4. Generate FASM assembly from the program model.
package compiler

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/danielcastelluccio/barelyc/codegen"
	"github.com/danielcastelluccio/barelyc/lexer"
	"github.com/danielcastelluccio/barelyc/parser"
	"github.com/danielcastelluccio/barelyc/stack"
	"github.com/danielcastelluccio/barelyc/token"
	"github.com/danielcastelluccio/barelyc/types"
)

// Compiler holds our object-state.
type Compiler struct {

	// debug holds a flag to decide if debug-level logging is enabled
	// for each pipeline stage.
	debug bool

	// sources holds the contents of every source file, in command-line
	// order; all are concatenated into a single program model (§6).
	sources []string

	log *logrus.Logger
}

//
// Our public API consists of the three functions:
//  New
//  SetDebug
//  Compile
//
// The rest of the code is an implementation detail.
//

// New creates a new compiler, given the contents of every source file
// in command-line order.
func New(sources []string, log *logrus.Logger) *Compiler {
	if log == nil {
		log = logrus.New()
	}
	return &Compiler{sources: sources, log: log}
}

// SetDebug changes the debug-flag for our logging.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
	if val {
		c.log.SetLevel(logrus.DebugLevel)
	}
}

// Compile converts the input program into FASM assembly language.
func (c *Compiler) Compile() (string, error) {

	//
	// Lex every source file and join their token streams.
	//
	tokens, err := c.tokenize()
	if err != nil {
		return "", fmt.Errorf("lexing: %w", err)
	}
	c.log.WithField("tokens", len(tokens)).Debug("lexing complete")

	//
	// Parse the joined stream into a program model.
	//
	prog, err := parser.New(tokens, stack.NewCounter(), c.log).Parse()
	if err != nil {
		return "", fmt.Errorf("parsing: %w", err)
	}
	c.log.WithFields(logrus.Fields{
		"functions":  len(prog.Functions),
		"structures": len(prog.Structures),
		"constants":  len(prog.Constants),
	}).Debug("parsing complete")

	//
	// Type-check before generating anything: no error recovery, halt
	// on the first violation (§1 Non-goals).
	//
	if err := types.New(prog, c.log).Check(); err != nil {
		return "", fmt.Errorf("type checking: %w", err)
	}

	//
	// Generate the output assembly.
	//
	out, err := codegen.New(prog, c.log).Generate()
	if err != nil {
		return "", fmt.Errorf("code generation: %w", err)
	}

	return out, nil
}

// tokenize lexes every source file in order and concatenates their
// token streams into one, dropping each file's own EOF marker in favor
// of a single one at the very end.
func (c *Compiler) tokenize() ([]token.Token, error) {
	if len(c.sources) == 0 {
		return nil, fmt.Errorf("no source files given")
	}

	var out []token.Token
	for _, src := range c.sources {
		lexed := lexer.New(src)
		for {
			tok := lexed.NextToken()
			if tok.Type == token.EOF {
				break
			}
			out = append(out, tok)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("source program is empty")
	}

	out = append(out, token.Token{Type: token.EOF})
	return out, nil
}
