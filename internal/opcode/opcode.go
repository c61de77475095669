// Package opcode provides the static mnemonic catalog of the assembler.
package opcode

import "strings"

// Class is the instruction class of a mnemonic.
type Class uint8

// instruction classes.
const (
	Imperative  Class = iota + 1 // IS
	Directive                    // AD
	Declarative                  // DL
	Register                     // RG
	Condition                    // CC
)

var classNames = [...]string{
	Imperative:  "IS",
	Directive:   "AD",
	Declarative: "DL",
	Register:    "RG",
	Condition:   "CC",
}

func (c Class) String() string {
	if c == 0 || int(c) >= len(classNames) {
		return "??"
	}
	return classNames[c]
}

// Reserves returns whether a statement of this class occupies one word of memory.
func (c Class) Reserves() bool {
	return c == Imperative || c == Declarative
}

// Kind identifies mnemonics that control table construction.
type Kind uint8

// directive kinds, NotDirective for everything that is dispatched by class only.
const (
	NotDirective Kind = iota
	Start
	End
	Origin
	Equ
	Ltorg
	DefineStorage
)

// Opcode is a catalog entry.
type Opcode struct {
	Mnemonic string
	Class    Class
	Code     int
	Kind     Kind
}

// catalog is never modified after initialization.
var catalog = map[string]Opcode{
	"stop":  {Mnemonic: "stop", Class: Imperative, Code: 0},
	"add":   {Mnemonic: "add", Class: Imperative, Code: 1},
	"sub":   {Mnemonic: "sub", Class: Imperative, Code: 2},
	"mult":  {Mnemonic: "mult", Class: Imperative, Code: 3},
	"mover": {Mnemonic: "mover", Class: Imperative, Code: 4},
	"movem": {Mnemonic: "movem", Class: Imperative, Code: 5},
	"comp":  {Mnemonic: "comp", Class: Imperative, Code: 6},
	"bc":    {Mnemonic: "bc", Class: Imperative, Code: 7},
	"div":   {Mnemonic: "div", Class: Imperative, Code: 8},
	"read":  {Mnemonic: "read", Class: Imperative, Code: 9},
	"print": {Mnemonic: "print", Class: Imperative, Code: 10},
	"load":  {Mnemonic: "load", Class: Imperative, Code: 11},

	"start":  {Mnemonic: "start", Class: Directive, Code: 1, Kind: Start},
	"end":    {Mnemonic: "end", Class: Directive, Code: 2, Kind: End},
	"origin": {Mnemonic: "origin", Class: Directive, Code: 3, Kind: Origin},
	"equ":    {Mnemonic: "equ", Class: Directive, Code: 4, Kind: Equ},
	"ltorg":  {Mnemonic: "ltorg", Class: Directive, Code: 5, Kind: Ltorg},

	"ds": {Mnemonic: "ds", Class: Declarative, Code: 1, Kind: DefineStorage},
	"dc": {Mnemonic: "dc", Class: Declarative, Code: 2},

	"areg": {Mnemonic: "areg", Class: Register, Code: 1},
	"breg": {Mnemonic: "breg", Class: Register, Code: 2},
	"creg": {Mnemonic: "creg", Class: Register, Code: 3},
	"dreg": {Mnemonic: "dreg", Class: Register, Code: 4},

	"eq":  {Mnemonic: "eq", Class: Condition, Code: 1},
	"lt":  {Mnemonic: "lt", Class: Condition, Code: 2},
	"gt":  {Mnemonic: "gt", Class: Condition, Code: 3},
	"le":  {Mnemonic: "le", Class: Condition, Code: 4},
	"ge":  {Mnemonic: "ge", Class: Condition, Code: 5},
	"any": {Mnemonic: "any", Class: Condition, Code: 6},
}

// Lookup returns the catalog entry of a word, ignoring case.
func Lookup(word string) (Opcode, bool) {
	op, ok := catalog[strings.ToLower(word)]
	return op, ok
}
