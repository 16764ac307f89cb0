/*
Package langdef converts textual grammar description to grammar.Grammar structure.

Grammar is described using parsing expression grammar (PEG) notation. Self-definition of this language
is available as Source:
*/
//  Grammar         <- >>_SP (MacroDefinition / SubDefinition / Definition)+ EOF
//
//  Definition      <- Identifier Parameters? >>LEFTARROW Selection
//  SubDefinition   <- Identifier >>SUBARROW Selection
//  MacroDefinition <- MacroIdentifier >>LEFTARROW Selection
//  Parameters      <- >>PARAMOPEN Parameter (>>COMMA Parameter)* >>CLOSE
//  Arguments       <- >>PARAMOPEN Selection (>>COMMA Selection)* >>CLOSE
//
//  Selection       <- Sequence (>>SLASH Sequence)*
//  Sequence        <- Prefix+
//  Prefix          <- (And / Not / Skip)? Suffix
//  Suffix          <- Primary (Optional / ZeroOrMore / OneOrMore / RepeatSuffix)?
//  Primary         <- RegularExp / Literal / RuleCall
//                   / Identifier !DefHead / MacroIdentifier !LEFTARROW / Parameter
//                   / >>OPEN Selection >>CLOSE
//  ...
/*
Description must be a valid UTF-8 text. Line breaks are insignificant, spaces and line comments
starting with # may be placed between any tokens.

A definition has a form:
   Name <- expression

The first definition without parameters is the root one. Order of other definitions does not matter,
definitions may refer to names that are defined later. Names are case-insensitive when checked
for duplicates and resolved, e.g.
   Foo <- 'a'
   foo <- 'b' # error: foo already defined
Each definition produces a node of the same name. Built-in EOF rule matches end of input.

Expression operators, from the lowest to the highest precedence:
   a / b       ordered choice, the first matching alternative wins
   a b         sequence
   &a  !a      positive and negative lookahead, never consume input
   >>a         match a, but drop its nodes from tree
   a? a* a+    optional, zero or more, one or more
   a{n} a{n,} a{,m} a{n,m}
               bounded repetition, m must be positive and not less than n
   (a)         grouping

Terminals are string literals and regular expressions.
String literals are delimited with single (') or double (") quotes and may contain escapes
\n \t \r \\ \' \" \xHH \uHHHH. Literal suffix :I makes matching case-insensitive, e.g. 'begin':I.
Regular expressions have a form r'pattern' or r"pattern", optionally followed by :flags where flags
are letters i (ignore case), m (multiline), s (dot matches line feed), x (ignore pattern whitespace).
Patterns use .NET/Perl syntax (lookarounds and backreferences are allowed), the quote delimiting
a pattern must be escaped with backslash. A pattern is anchored at the current position.

A definition named _NAME (underscore followed by an uppercase name) is a macro. Macro match is folded
into a single terminal node of the macro type, macros are not memoized.

A sub-definition has a form:
   Name <-- expression
It defines an alternative body of already defined rule used when sub-parsing: nodes of this type
in a parsed tree are reparsed with this body and replaced with the result.

A parameterized definition has a form:
   Name:(@a, @b) <- expression using @a and @b
and is called as Name:(expression, expression). Every call site is a separate rule instance.

Grammar checks report duplicate and undefined names, wrong argument counts,
and left-recursive rules, e.g.
   Baz <- Quux 'x'
   Quux <- Baz 'y' # error: left recursion found: Baz->Quux->Baz
*/
package langdef
