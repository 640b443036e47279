// Package ple is a persistent logic engine: boolean rules are built as
// trees of composable operators and evaluated against a piece of input
// data, typically free text.
//
// Nine operator kinds are available: the constants AlwaysTrue and
// AlwaysFalse, a Regex leaf that searches the input for a pattern, and
// the combinators And, Or, Not, Xor, Nand and Nor, which evaluate
// their parameters recursively.
//
// Typical use is as follows:
//
//  1. Create an Engine, optionally attaching a Store for persistence
//  2. Build operators with Engine.NewOperator or ple.NewOperator
//  3. Compose them with AddParameter
//  4. Evaluate the root against input data with Engine.Evaluate
//
// A minimal example:
//
//	engine := ple.NewEngine()
//	rule, _ := engine.CompoundRegexRule(ctx, ple.And,
//		[]string{"^ORDER", "markman"}, "markman orders")
//	ok, err := engine.Evaluate(rule, docketText)
//
// # Pattern caching
//
// The engine owns a PatternCache that compiles each distinct pattern
// once and reuses it across operators and evaluations. The cache is
// keyed by pattern text only: a hit ignores the requesting operator's
// CaseSensitive flag. This is long-standing, documented behavior; see
// PatternCache before relying on mixed-case-sensitivity patterns.
//
// # Structure, Ownership and Modification
//
// Operators form a DAG: one operator may be a parameter of several
// parents. Only direct self-reference is rejected when parameters are
// added. Indirect cycles (a contains b, b contains a) are NOT
// detected; evaluating such a structure recurses without bound. The
// calling application is responsible for not constructing cycles.
//
// Parameter lists are append-only and evaluation order is insertion
// order. Building a tree is not safe for concurrent use; evaluating
// through a shared engine is.
package ple
