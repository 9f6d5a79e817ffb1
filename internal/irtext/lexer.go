// Package irtext is the textual front end for the three-address IR:
// a participle stateful lexer plus a struct-tag grammar that parses a
// `.ir` file into an ir.Module. It is deliberately thin — no type
// checking, no name resolution beyond what ir.WireCFG already does —
// existing purely so cmd/rvcc has something to read off disk.
package irtext

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes a .ir source file. Keywords ("func", "const",
// "add", ...) are not their own token kind — they are Ident tokens
// whose literal value the grammar matches directly, the same
// convention the participle grammar this package is grounded on uses
// for its own keywords.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `-?[0-9]+`, nil},
		{"Punct", `[{}():,=]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
