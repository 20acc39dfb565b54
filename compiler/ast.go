package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// StdinIdentity is the source identity the compiler reports when input is fed
// over standard input instead of a file.
const StdinIdentity = "stdin"

// fileURIScheme is the scheme prefix of a canonical source identity.
const fileURIScheme = "file://"

// ModuleAst is one module of the compiler's AST dump. The declarations needed
// for table building and ABI synthesis are decoded into typed fields; the
// complete tree is retained so callers can reach nodes this package does not
// model.
type ModuleAst struct {
	// Contracts is the ordered sequence of contract declarations in the module.
	Contracts []ContractDeclaration `json:"contracts"`

	// Aliases is the ordered sequence of type alias declarations in the module.
	Aliases []AliasDeclaration `json:"alias"`

	// raw is the complete decoded JSON tree of the module.
	raw map[string]any
}

// Raw returns the complete decoded JSON tree of the module. Numeric literals
// within it are preserved as json.Number values.
func (m *ModuleAst) Raw() map[string]any {
	return m.raw
}

// UnmarshalJSON decodes both the typed view and the raw tree of a module.
func (m *ModuleAst) UnmarshalJSON(data []byte) error {
	// Decode the typed fields through an alias type so this method does not
	// recurse into itself.
	type moduleAstAlias ModuleAst
	if err := json.Unmarshal(data, (*moduleAstAlias)(m)); err != nil {
		return err
	}

	// Decode the full tree with UseNumber so large integer literals survive.
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	return decoder.Decode(&m.raw)
}

// ContractDeclaration is a contract declared within a module.
type ContractDeclaration struct {
	// Name is the declared contract name.
	Name string `json:"name"`

	// Statics is the ordered sequence of static constant declarations.
	Statics []StaticDeclaration `json:"statics"`

	// Constructor is the explicitly declared constructor, if any. When absent,
	// the contract's properties form an implicit constructor signature.
	Constructor *ConstructorDeclaration `json:"constructor"`

	// Properties is the ordered sequence of contract properties.
	Properties []ParameterDeclaration `json:"properties"`

	// Functions is the ordered sequence of function declarations.
	Functions []FunctionDeclaration `json:"functions"`
}

// StaticDeclaration is a contract-scoped compile-time constant declaration.
type StaticDeclaration struct {
	// Name is the declared constant name, unqualified.
	Name string `json:"name"`

	// Expr is the initializing expression of the constant.
	Expr StaticExpression `json:"expr"`
}

// StaticExpression is the initializing expression of a static declaration.
type StaticExpression struct {
	// Value is the declared literal value.
	Value LiteralValue `json:"value"`
}

// ConstructorDeclaration is an explicitly declared contract constructor.
type ConstructorDeclaration struct {
	// Params is the ordered sequence of constructor parameters.
	Params []ParameterDeclaration `json:"params"`
}

// FunctionDeclaration is a function declared within a contract.
type FunctionDeclaration struct {
	// Name is the declared function name.
	Name string `json:"name"`

	// Params is the ordered sequence of function parameters.
	Params []ParameterDeclaration `json:"params"`

	// Visibility is the declared visibility of the function.
	Visibility string `json:"visibility"`
}

// visibilityPublic marks functions that are externally invocable.
const visibilityPublic = "Public"

// ParameterDeclaration is a named, typed parameter or property.
type ParameterDeclaration struct {
	// Name is the declared parameter name.
	Name string `json:"name"`

	// Type is the declared type expression, possibly aliased or carrying
	// symbolic array sizes.
	Type string `json:"type"`
}

// AliasDeclaration is a type alias declared within a module, in the field
// naming the AST dump uses.
type AliasDeclaration struct {
	// Alias is the declared alias name.
	Alias string `json:"alias"`

	// Type is the aliased type expression.
	Type string `json:"type"`
}

// LiteralValue holds a compile-time literal exactly as emitted by the AST.
// Numeric literals are exposed as arbitrary-precision decimals so integer
// constants beyond 64 bits survive intact.
type LiteralValue struct {
	raw json.RawMessage
}

// UnmarshalJSON retains the raw JSON encoding of the literal.
func (v *LiteralValue) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	return nil
}

// MarshalJSON emits the literal in its original JSON encoding.
func (v LiteralValue) MarshalJSON() ([]byte, error) {
	if v.raw == nil {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// Decimal returns the literal as a decimal and a boolean indicating whether
// the literal was numeric.
func (v LiteralValue) Decimal() (decimal.Decimal, bool) {
	value, err := decimal.NewFromString(string(v.raw))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return value, true
}

// String returns the literal in its source notation, without JSON string
// quoting.
func (v LiteralValue) String() string {
	text := string(v.raw)
	if unquoted, err := strconv.Unquote(text); err == nil {
		return unquoted
	}
	return text
}

// astDump is the decoded AST artifact: module trees keyed by source identity.
type astDump map[string]*ModuleAst

// decodeAstDump parses the raw bytes of an AST artifact.
func decodeAstDump(data []byte) (astDump, error) {
	var dump astDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, err
	}
	return dump, nil
}

// normalizeSourceIdentities rewrites every plain file-path key of the dump to
// its canonical absolute file URI. The standard-input marker and keys that are
// already URIs are left untouched, so normalization is idempotent.
func (d astDump) normalizeSourceIdentities() error {
	for _, key := range maps.Keys(d) {
		if key == StdinIdentity || strings.HasPrefix(key, fileURIScheme) {
			continue
		}
		uri, err := canonicalFileURI(key)
		if err != nil {
			return err
		}
		d[uri] = d[key]
		delete(d, key)
	}
	return nil
}

// identities returns the source identities of the dump in deterministic
// order: the given primary identity first when present, then the remaining
// identities sorted.
func (d astDump) identities(primary string) []string {
	keys := maps.Keys(d)
	slices.Sort(keys)
	if !slices.Contains(keys, primary) {
		return keys
	}
	ordered := make([]string, 0, len(keys))
	ordered = append(ordered, primary)
	for _, key := range keys {
		if key != primary {
			ordered = append(ordered, key)
		}
	}
	return ordered
}

// extractPrimary removes the primary module from the dump and returns it,
// leaving only dependency modules behind.
func (d astDump) extractPrimary(identity string) (*ModuleAst, error) {
	root, ok := d[identity]
	if !ok {
		return nil, fmt.Errorf("AST dump does not contain the primary module '%s'", identity)
	}
	delete(d, identity)
	return root, nil
}

// canonicalFileURI converts a file path to its canonical absolute file URI.
func canonicalFileURI(path string) (string, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	uri := url.URL{Scheme: "file", Path: filepath.ToSlash(absolute)}
	return uri.String(), nil
}
