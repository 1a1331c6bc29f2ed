package object

import "strings"

// Entry describes one named command's tag, canonical spellings, and parse
// aliases (spec.md §4.2). Short is the lowercase/symbolic canonical form,
// Long is the word-form canonical rendering used when the LongForm setting
// is on; Aliases are extra spellings accepted on parse (ASCII stand-ins for
// Unicode glyphs per spec.md §6 "Text surface").
type Entry struct {
	Tag     Tag
	Name    string
	Short   string
	Long    string
	Aliases []string
}

// commandEntries is the single source of truth for every named command: its
// tag (assigned by position, starting at firstCommandTag), spellings, and
// aliases. Appending a new command at the end never changes an existing
// command's tag.
var commandEntries = []Entry{
	{Name: "Add", Short: "+", Long: "Add"},
	{Name: "Sub", Short: "-", Long: "Subtract"},
	{Name: "Mul", Short: "×", Long: "Multiply", Aliases: []string{"*"}},
	{Name: "Div", Short: "÷", Long: "Divide", Aliases: []string{"/"}},
	{Name: "Neg", Short: "neg", Long: "Negate"},
	{Name: "Inv", Short: "inv", Long: "Invert"},
	{Name: "Pow", Short: "^", Long: "Power"},
	{Name: "Sqrt", Short: "√", Long: "Sqrt", Aliases: []string{"sqrt"}},
	{Name: "Cbrt", Short: "∛", Long: "Cbrt", Aliases: []string{"cbrt"}},
	{Name: "Fact", Short: "!", Long: "Factorial", Aliases: []string{"fact"}},
	{Name: "Mod", Short: "mod", Long: "Modulo"},
	{Name: "IDiv", Short: "idiv", Long: "IntegerDivide"},

	{Name: "Eq", Short: "==", Long: "Equal"},
	{Name: "Neq", Short: "≠", Long: "NotEqual", Aliases: []string{"!="}},
	{Name: "Lt", Short: "<", Long: "LessThan"},
	{Name: "Le", Short: "≤", Long: "LessEqual", Aliases: []string{"<="}},
	{Name: "Gt", Short: ">", Long: "GreaterThan"},
	{Name: "Ge", Short: "≥", Long: "GreaterEqual", Aliases: []string{">="}},
	{Name: "And", Short: "and", Long: "And"},
	{Name: "Or", Short: "or", Long: "Or"},
	{Name: "Xor", Short: "xor", Long: "Xor"},
	{Name: "Not", Short: "not", Long: "Not"},

	{Name: "Sin", Short: "sin", Long: "Sin"},
	{Name: "Cos", Short: "cos", Long: "Cos"},
	{Name: "Tan", Short: "tan", Long: "Tan"},
	{Name: "ASin", Short: "sin⁻¹", Long: "ArcSin", Aliases: []string{"asin"}},
	{Name: "ACos", Short: "cos⁻¹", Long: "ArcCos", Aliases: []string{"acos"}},
	{Name: "ATan", Short: "tan⁻¹", Long: "ArcTan", Aliases: []string{"atan"}},
	{Name: "Exp", Short: "exp", Long: "Exp"},
	{Name: "Ln", Short: "ln", Long: "Ln"},
	{Name: "Log", Short: "log", Long: "Log"},
	{Name: "Exp10", Short: "alog", Long: "Exp10"},

	{Name: "Dup", Short: "dup", Long: "Duplicate"},
	{Name: "Dup2", Short: "dup2", Long: "Duplicate2"},
	{Name: "DupN", Short: "dupn", Long: "DuplicateN"},
	{Name: "Drop", Short: "drop", Long: "Drop"},
	{Name: "Drop2", Short: "drop2", Long: "Drop2"},
	{Name: "DropN", Short: "dropn", Long: "DropN"},
	{Name: "Swap", Short: "swap", Long: "Swap"},
	{Name: "Over", Short: "over", Long: "Over"},
	{Name: "Rot", Short: "rot", Long: "Rotate"},
	{Name: "Roll", Short: "roll", Long: "Roll"},
	{Name: "RollD", Short: "rolld", Long: "RollDown"},
	{Name: "Pick", Short: "pick", Long: "Pick"},
	{Name: "Depth", Short: "depth", Long: "Depth"},
	{Name: "Clear", Short: "clear", Long: "ClearStack"},
	{Name: "LastArg", Short: "lastarg", Long: "LastArgument"},
	{Name: "Undo", Short: "undo", Long: "Undo"},

	{Name: "Sto", Short: "sto", Long: "Store"},
	{Name: "Rcl", Short: "rcl", Long: "Recall"},
	{Name: "Purge", Short: "purge", Long: "Purge"},
	{Name: "CrDir", Short: "crdir", Long: "CreateDirectory"},
	{Name: "UpDir", Short: "updir", Long: "UpDirectory"},
	{Name: "Home", Short: "home", Long: "Home"},
	{Name: "Vars", Short: "vars", Long: "Variables"},

	{Name: "Eval", Short: "eval", Long: "Evaluate"},
	{Name: "Type", Short: "type", Long: "TypeOf"},

	{Name: "Expand", Short: "expand", Long: "Expand"},
	{Name: "Collect", Short: "collect", Long: "Collect"},
	{Name: "Simplify", Short: "simplify", Long: "Simplify"},
	{Name: "ToNum", Short: "→num", Long: "ToNumber", Aliases: []string{"->num"}},
	{Name: "Factor", Short: "factor", Long: "Factor"},

	{Name: "Wait", Short: "wait", Long: "Wait"},
	{Name: "Interrupt", Short: "interrupt", Long: "Interrupt"},

	// Control structures (spec.md §4.7); evaluated specially but still
	// reachable through ordinary name lookup for parse/render purposes -
	// the parser swaps the plain command object out for the matching
	// *Ctl composite once it has collected the sub-programs.
	{Name: "If", Short: "if", Long: "If"},
	{Name: "Then", Short: "then", Long: "Then"},
	{Name: "Else", Short: "else", Long: "Else"},
	{Name: "End", Short: "end", Long: "End"},
	{Name: "Do", Short: "do", Long: "Do"},
	{Name: "Until", Short: "until", Long: "Until"},
	{Name: "While", Short: "while", Long: "While"},
	{Name: "Repeat", Short: "repeat", Long: "Repeat"},
	{Name: "Start", Short: "start", Long: "Start"},
	{Name: "Next", Short: "next", Long: "Next"},
	{Name: "Step", Short: "step", Long: "Step"},
	{Name: "For", Short: "for", Long: "For"},
	{Name: "IfErr", Short: "iferr", Long: "IfErr"},
}

// Named command tag variables, one per commandEntries row, assigned in
// init() below. Tags are only *positionally* stable (firstCommandTag + index
// into commandEntries), so dispatch code elsewhere in the module (internal/
// eval, internal/expr, internal/reader) that needs to compare against "the
// Add command" by identity, rather than by re-resolving a spelling through
// Lookup every time, does so against these named vars instead of literal
// Tag constants.
var (
	Add, Sub, Mul, Div, Neg, Inv, Pow, Sqrt, Cbrt, Fact, Mod, IDiv Tag

	Eq, Neq, Lt, Le, Gt, Ge, And, Or, Xor, Not Tag

	Sin, Cos, Tan, ASin, ACos, ATan, Exp, Ln, Log, Exp10 Tag

	Dup, Dup2, DupN, Drop, Drop2, DropN, Swap, Over, Rot Tag
	Roll, RollD, Pick, Depth, Clear, LastArg, Undo       Tag

	Sto, Rcl, Purge, CrDir, UpDir, Home, Vars Tag

	Eval, Type Tag

	Expand, Collect, Simplify, ToNum, Factor Tag

	Wait, Interrupt Tag

	If, Then, Else, End, Do, Until, While, Repeat Tag
	Start, Next, Step, For, IfErr                 Tag
)

// namedTagVars maps every commandEntries row's Name to the package-level
// var that should hold its assigned Tag, populated by init().
var namedTagVars = map[string]*Tag{
	"Add": &Add, "Sub": &Sub, "Mul": &Mul, "Div": &Div, "Neg": &Neg, "Inv": &Inv,
	"Pow": &Pow, "Sqrt": &Sqrt, "Cbrt": &Cbrt, "Fact": &Fact, "Mod": &Mod, "IDiv": &IDiv,

	"Eq": &Eq, "Neq": &Neq, "Lt": &Lt, "Le": &Le, "Gt": &Gt, "Ge": &Ge,
	"And": &And, "Or": &Or, "Xor": &Xor, "Not": &Not,

	"Sin": &Sin, "Cos": &Cos, "Tan": &Tan, "ASin": &ASin, "ACos": &ACos, "ATan": &ATan,
	"Exp": &Exp, "Ln": &Ln, "Log": &Log, "Exp10": &Exp10,

	"Dup": &Dup, "Dup2": &Dup2, "DupN": &DupN, "Drop": &Drop, "Drop2": &Drop2, "DropN": &DropN,
	"Swap": &Swap, "Over": &Over, "Rot": &Rot, "Roll": &Roll, "RollD": &RollD, "Pick": &Pick,
	"Depth": &Depth, "Clear": &Clear, "LastArg": &LastArg, "Undo": &Undo,

	"Sto": &Sto, "Rcl": &Rcl, "Purge": &Purge, "CrDir": &CrDir, "UpDir": &UpDir,
	"Home": &Home, "Vars": &Vars,

	"Eval": &Eval, "Type": &Type,

	"Expand": &Expand, "Collect": &Collect, "Simplify": &Simplify, "ToNum": &ToNum, "Factor": &Factor,

	"Wait": &Wait, "Interrupt": &Interrupt,

	"If": &If, "Then": &Then, "Else": &Else, "End": &End,
	"Do": &Do, "Until": &Until, "While": &While, "Repeat": &Repeat,
	"Start": &Start, "Next": &Next, "Step": &Step, "For": &For, "IfErr": &IfErr,
}

// Table holds every command entry, indexed by Tag-firstCommandTag. Built once
// at init time so Tag values are stable for the lifetime of the process
// (and, via spec.md §6, across persisted heaps).
var Table []Entry

// spellingIndex maps a case-folded spelling to the command's Tag, built from
// every entry's Short, Long, and Aliases forms.
var spellingIndex map[string]Tag

func init() {
	Table = make([]Entry, len(commandEntries))
	spellingIndex = make(map[string]Tag, len(commandEntries)*3)
	for i, e := range commandEntries {
		e.Tag = firstCommandTag + Tag(i)
		Table[i] = e
		addSpelling(e.Short, e.Tag)
		addSpelling(e.Long, e.Tag)
		for _, a := range e.Aliases {
			addSpelling(a, e.Tag)
		}
		if v, ok := namedTagVars[e.Name]; ok {
			*v = e.Tag
		}
	}
}

func addSpelling(spelling string, tag Tag) {
	if spelling == "" {
		return
	}
	key := strings.ToLower(spelling)
	if _, exists := spellingIndex[key]; !exists {
		spellingIndex[key] = tag
	}
}

// Lookup resolves a case-folded spelling to its command tag and entry
// (spec.md §4.3 "Symbols/commands"). The empty, ok=false result means the
// run of name-valid characters is a plain symbol, not a command.
func Lookup(spelling string) (Entry, bool) {
	tag, ok := spellingIndex[strings.ToLower(spelling)]
	if !ok {
		return Entry{}, false
	}
	return EntryFor(tag)
}

// EntryFor returns the table entry for a command tag.
func EntryFor(tag Tag) (Entry, bool) {
	idx := int(tag) - int(firstCommandTag)
	if idx < 0 || idx >= len(Table) {
		return Entry{}, false
	}
	return Table[idx], true
}

// MustName is a debug helper returning an entry's canonical short name, or
// "?" for an unknown tag - used by panic/trace formatting, never by the
// parser/renderer's normal path.
func MustName(tag Tag) string {
	if e, ok := EntryFor(tag); ok {
		return e.Short
	}
	return "?"
}

// ByName looks a command entry up by its canonical Name field (used by the
// evaluator/expression engine to reference specific commands without
// depending on spelling/capitalization settings).
func ByName(name string) (Entry, bool) {
	for _, e := range Table {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
