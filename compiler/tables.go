package compiler

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// AliasEntry is one declared type alias, flattened out of a module AST.
type AliasEntry struct {
	// Name is the declared alias name.
	Name string `json:"name"`

	// Type is the aliased type expression.
	Type string `json:"type"`
}

// buildAliasTable flattens the alias declarations of every module in the dump
// into one global sequence. Modules are visited in the given identity order
// and no deduplication is applied, so later duplicates simply appear later;
// consumers decide precedence.
func buildAliasTable(dump astDump, identities []string) []AliasEntry {
	var aliases []AliasEntry
	for _, identity := range identities {
		for _, declaration := range dump[identity].Aliases {
			aliases = append(aliases, AliasEntry{
				Name: declaration.Alias,
				Type: declaration.Type,
			})
		}
	}
	return aliases
}

// StaticConstTable maps qualified "<Contract>.<Static>" names to their
// declared literal values.
type StaticConstTable map[string]LiteralValue

// QualifiedNames returns the qualified constant names of the table in sorted
// order.
func (t StaticConstTable) QualifiedNames() []string {
	names := maps.Keys(t)
	slices.Sort(names)
	return names
}

// buildStaticConstTable records every static constant declared by every
// contract of every module in the dump, keyed by qualified name. A duplicate
// qualified name indicates a malformed or duplicate-compiled AST and is
// reported as an error rather than silently overwritten.
func buildStaticConstTable(dump astDump, identities []string) (StaticConstTable, error) {
	table := make(StaticConstTable)
	for _, identity := range identities {
		for _, contract := range dump[identity].Contracts {
			for _, static := range contract.Statics {
				name := fmt.Sprintf("%s.%s", contract.Name, static.Name)
				if _, exists := table[name]; exists {
					return nil, fmt.Errorf("static constant '%s' is declared more than once in the AST dump", name)
				}
				table[name] = static.Expr.Value
			}
		}
	}
	return table, nil
}
