package compiler

import (
	"fmt"
	"regexp"
	"strings"
)

// AbiEntryType distinguishes the kinds of entries an ABI descriptor exposes.
type AbiEntryType string

const (
	// AbiEntryConstructor marks the constructor entry of a descriptor.
	AbiEntryConstructor AbiEntryType = "constructor"
	// AbiEntryFunction marks a public method entry of a descriptor.
	AbiEntryFunction AbiEntryType = "function"
)

// AbiParam is a single parameter of an ABI entry. Its type is fully resolved:
// alias chains are expanded and symbolic array sizes replaced by their
// constant values.
type AbiParam struct {
	// Name is the parameter name.
	Name string `json:"name"`

	// Type is the fully resolved concrete type of the parameter.
	Type string `json:"type"`
}

// AbiEntry is one externally invocable entry point of a contract.
type AbiEntry struct {
	// Type indicates whether the entry is the constructor or a public method.
	Type AbiEntryType `json:"type"`

	// Name is the method name. Empty for the constructor.
	Name string `json:"name,omitempty"`

	// Index is the position of the method among the contract's public methods.
	// Always zero for the constructor.
	Index int `json:"index"`

	// Params is the ordered parameter list of the entry.
	Params []AbiParam `json:"params"`
}

// AbiDescriptor is the synthesized public interface of a contract: enough
// information for a caller to construct valid invocation data without
// consulting the AST again.
type AbiDescriptor struct {
	// Contract is the name of the described contract.
	Contract string `json:"contract"`

	// Constructor is the constructor entry of the contract. When the contract
	// declares no explicit constructor, its properties form the signature.
	Constructor AbiEntry `json:"constructor"`

	// Methods is the ordered sequence of public method entries.
	Methods []AbiEntry `json:"methods"`

	// Aliases is the global alias table the descriptor was resolved against.
	Aliases []AliasEntry `json:"alias"`

	// StaticConsts is the global static constant table the descriptor was
	// resolved against.
	StaticConsts StaticConstTable `json:"staticConsts"`
}

// arrayDimensionPattern captures one bracketed size expression of an array
// type, which may be a literal number or a symbolic constant reference.
var arrayDimensionPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// synthesizeAbi produces the ABI descriptor for the last-declared contract of
// the primary module. By convention, the final contract in file order is the
// exported contract; earlier contracts are helpers reachable only via import.
// Every parameter type in the descriptor is resolved against the alias and
// static constant tables; an unresolvable alias or array size is an error.
func synthesizeAbi(primary *ModuleAst, aliases []AliasEntry, statics StaticConstTable) (*AbiDescriptor, error) {
	if len(primary.Contracts) == 0 {
		return nil, fmt.Errorf("primary module declares no contracts, cannot synthesize an ABI")
	}
	contract := primary.Contracts[len(primary.Contracts)-1]
	resolver := &typeResolver{aliases: aliases, statics: statics, contract: contract.Name}

	// The explicit constructor takes precedence; otherwise the contract's
	// properties define the implicit constructor signature.
	constructorParams := contract.Properties
	if contract.Constructor != nil {
		constructorParams = contract.Constructor.Params
	}
	constructor, err := resolveAbiEntry(AbiEntryConstructor, "", 0, constructorParams, resolver)
	if err != nil {
		return nil, err
	}

	var methods []AbiEntry
	index := 0
	for _, function := range contract.Functions {
		if function.Visibility != visibilityPublic {
			continue
		}
		method, err := resolveAbiEntry(AbiEntryFunction, function.Name, index, function.Params, resolver)
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
		index++
	}

	return &AbiDescriptor{
		Contract:     contract.Name,
		Constructor:  constructor,
		Methods:      methods,
		Aliases:      aliases,
		StaticConsts: statics,
	}, nil
}

// resolveAbiEntry builds one descriptor entry with every parameter type fully
// resolved.
func resolveAbiEntry(entryType AbiEntryType, name string, index int, params []ParameterDeclaration, resolver *typeResolver) (AbiEntry, error) {
	resolved := make([]AbiParam, len(params))
	for i, param := range params {
		concrete, err := resolver.resolve(param.Type)
		if err != nil {
			return AbiEntry{}, fmt.Errorf("could not resolve type of parameter '%s': %w", param.Name, err)
		}
		resolved[i] = AbiParam{Name: param.Name, Type: concrete}
	}
	return AbiEntry{Type: entryType, Name: name, Index: index, Params: resolved}, nil
}

// typeResolver rewrites declared type expressions into concrete ones by
// expanding alias chains and substituting static constant array sizes.
type typeResolver struct {
	aliases  []AliasEntry
	statics  StaticConstTable
	contract string
}

// resolve returns the concrete form of a declared type expression.
func (r *typeResolver) resolve(declared string) (string, error) {
	element, dimensions := splitArrayType(declared)

	// Expand the alias chain of the element type. An alias may itself name an
	// array type, whose inner dimensions nest inside the ones already seen.
	visited := make(map[string]bool)
	for {
		target, ok := r.aliasTarget(element)
		if !ok {
			break
		}
		if visited[element] {
			return "", fmt.Errorf("type alias '%s' participates in a cycle", element)
		}
		visited[element] = true
		aliasElement, aliasDimensions := splitArrayType(target)
		element = aliasElement
		dimensions = append(dimensions, aliasDimensions...)
	}

	// Substitute symbolic array sizes with their static constant values.
	for i, dimension := range dimensions {
		if isNumeric(dimension) {
			continue
		}
		value, err := r.lookupStaticSize(dimension)
		if err != nil {
			return "", err
		}
		dimensions[i] = value
	}

	concrete := element
	for _, dimension := range dimensions {
		concrete += "[" + dimension + "]"
	}
	return concrete, nil
}

// aliasTarget returns the aliased type of a name, using the first matching
// alias table entry.
func (r *typeResolver) aliasTarget(name string) (string, bool) {
	for _, alias := range r.aliases {
		if alias.Name == name {
			return alias.Type, true
		}
	}
	return "", false
}

// lookupStaticSize resolves a symbolic array size to its literal value. Bare
// names are first qualified with the contract being described, then tried as
// given.
func (r *typeResolver) lookupStaticSize(size string) (string, error) {
	candidates := []string{size}
	if !strings.Contains(size, ".") {
		candidates = []string{r.contract + "." + size, size}
	}
	for _, candidate := range candidates {
		if value, ok := r.statics[candidate]; ok {
			number, numeric := value.Decimal()
			if !numeric || !number.IsInteger() {
				return "", fmt.Errorf("static constant '%s' is not an integer and cannot size an array", candidate)
			}
			return number.String(), nil
		}
	}
	return "", fmt.Errorf("array size '%s' does not name a known static constant (known: %s)", size, strings.Join(r.statics.QualifiedNames(), ", "))
}

// splitArrayType separates a type expression into its element type and its
// ordered list of bracketed size expressions.
func splitArrayType(declared string) (string, []string) {
	bracket := strings.Index(declared, "[")
	if bracket < 0 {
		return declared, nil
	}
	var dimensions []string
	for _, match := range arrayDimensionPattern.FindAllStringSubmatch(declared[bracket:], -1) {
		dimensions = append(dimensions, match[1])
	}
	return declared[:bracket], dimensions
}

// isNumeric reports whether a size expression is a plain number.
func isNumeric(size string) bool {
	if size == "" {
		return false
	}
	for _, r := range size {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
