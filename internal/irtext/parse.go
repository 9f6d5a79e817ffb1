package irtext

import (
	"github.com/alecthomas/participle/v2"

	"rvcc/internal/diag"
	"rvcc/internal/ir"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

// Parse lexes and parses source (named filename for diagnostics) and
// builds an ir.Module from it. A syntax error is reported through
// reporter at its source position; a core error from CFG wiring (an
// unknown block label) is returned directly, since it is not a parse
// problem.
func Parse(filename, source string, reporter *diag.Reporter) (*ir.Module, error) {
	prog, err := parser.ParseString(filename, source)
	if err != nil {
		pos := diag.Position{}
		if perr, ok := err.(participle.Error); ok {
			p := perr.Position()
			pos = diag.Position{Line: p.Line, Column: p.Column}
		}
		reporter.Add(diag.Diagnostic{
			Level:    diag.Error,
			Code:     diag.ErrSyntax,
			Message:  "syntax error: " + err.Error(),
			Position: pos,
			Length:   1,
		})
		return nil, err
	}
	return Build(prog)
}
