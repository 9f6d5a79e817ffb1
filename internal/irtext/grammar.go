package irtext

// Program is the root production: zero or more function definitions.
type Program struct {
	Functions []*Function `@@*`
}

// Function is `func name(p1, p2) { blocks... }`.
type Function struct {
	Name   string   `"func" @Ident "("`
	Params []string `[ @Ident { "," @Ident } ] ")" "{"`
	Blocks []*Block `@@*`
	Close  string   `"}"`
}

// Block is a label followed by its instructions, up to the next label
// or the function's closing brace.
type Block struct {
	Label        string         `@Ident ":"`
	Instructions []*Instruction `@@*`
}

// Instruction is the top-level alternation over every instruction
// shape the textual format accepts. Def covers every "name = ..."
// form; the rest start with their own keyword. Keywords lex as Ident
// tokens, just like Def's dest, so telling them apart relies on the
// parser's lookahead (see parse.go).
type Instruction struct {
	Def   *DefInstr  `  @@`
	Call  *CallStmt  `| @@`
	Br    *BrInstr   `| @@`
	Jmp   *JmpInstr  `| @@`
	Ret   *RetInstr  `| @@`
	Print *PrintInstr `| @@`
}

// DefInstr is "dest = rhs", where rhs is one of the const/binary/not/
// call forms or, failing those, a bare operand (a copy/Assign).
type DefInstr struct {
	Dest string `@Ident "="`
	RHS  *RHS   `@@`
}

type RHS struct {
	Const  *ConstExpr  `  @@`
	Binary *BinaryExpr `| @@`
	Not    *NotExpr    `| @@`
	Call   *CallExpr   `| @@`
	Name   string      `| @Ident | @Integer`
}

// ConstExpr is "const <int>" or "const true|false".
type ConstExpr struct {
	Keyword string `"const"`
	Value   string `@Integer | @( "true" | "false" )`
}

// BinaryExpr covers every two-operand opcode Binary supports.
type BinaryExpr struct {
	Op  string `@( "add" | "sub" | "mul" | "div" | "eq" | "lt" | "gt" | "le" | "ge" | "and" | "or" )`
	Lhs string `( @Ident | @Integer ) ","`
	Rhs string `( @Ident | @Integer )`
}

// NotExpr is "not <operand>".
type NotExpr struct {
	Arg string `"not" ( @Ident | @Integer )`
}

// CallExpr is "call target(args...)" used as an RHS (has a dest).
type CallExpr struct {
	Target string   `"call" @Ident "("`
	Args   []string `[ ( @Ident | @Integer ) { "," ( @Ident | @Integer ) } ] ")"`
}

// CallStmt is a bare "call target(args...)" with no dest.
type CallStmt struct {
	Target string   `"call" @Ident "("`
	Args   []string `[ ( @Ident | @Integer ) { "," ( @Ident | @Integer ) } ] ")"`
}

// BrInstr is "br cond, then, else".
type BrInstr struct {
	Cond string `"br" @Ident ","`
	Then string `@Ident ","`
	Else string `@Ident`
}

// JmpInstr is "jmp label".
type JmpInstr struct {
	Label string `"jmp" @Ident`
}

// RetInstr is "ret" optionally followed by comma-separated operands.
type RetInstr struct {
	Args []string `"ret" [ ( @Ident | @Integer ) { "," ( @Ident | @Integer ) } ]`
}

// PrintInstr is "print v1, v2, ...".
type PrintInstr struct {
	Values []string `"print" ( @Ident | @Integer ) { "," ( @Ident | @Integer ) }`
}
