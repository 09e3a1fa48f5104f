// Package plugins ships the built-in analyzers. Each one is an ordinary
// instance of the analyzer contract; nothing here is special-cased by the
// runner or the registry.
package plugins

import "github.com/xab-mack/metaast/internal/analyzer"

// Builtin returns fresh instances of every built-in analyzer, in the order
// they auto-register.
func Builtin() []analyzer.Analyzer {
	return []analyzer.Analyzer{
		&nestingDepth{},
		&magicNumber{},
		&unreachableCode{},
		&emptyHandler{},
		&longBlock{},
	}
}
