package compiler

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testAstDump is an AST artifact with a standard-input primary module and two
// dependency modules keyed by relative paths.
const testAstDump = `{
	"stdin": {
		"contracts": [
			{
				"name": "A",
				"statics": [{"name": "N", "expr": {"value": 5}}],
				"properties": [{"name": "x", "type": "int"}],
				"functions": [{"name": "unlock", "params": [{"name": "z", "type": "int"}], "visibility": "Public"}]
			}
		],
		"alias": [{"alias": "Age", "type": "int"}]
	},
	"./dep1.scrypt": {
		"contracts": [
			{
				"name": "B",
				"statics": [{"name": "M", "expr": {"value": 10}}],
				"properties": [],
				"functions": []
			}
		],
		"alias": [{"alias": "Coins", "type": "int"}]
	},
	"dep2.scrypt": {
		"contracts": [],
		"alias": []
	}
}`

func decodeTestDump(t *testing.T, data string) astDump {
	dump, err := decodeAstDump([]byte(data))
	assert.Nil(t, err)
	return dump
}

func TestNormalizeSourceIdentities(t *testing.T) {
	dump := decodeTestDump(t, testAstDump)
	err := dump.normalizeSourceIdentities()
	assert.Nil(t, err)

	// The standard-input marker key is never rewritten.
	assert.Contains(t, dump, StdinIdentity)

	// Every other key becomes an absolute file URI.
	for key := range dump {
		if key == StdinIdentity {
			continue
		}
		assert.True(t, strings.HasPrefix(key, fileURIScheme), "key %q was not rewritten to a file URI", key)
	}

	// Normalizing an already normalized dump leaves all keys unchanged.
	before := dump.identities(StdinIdentity)
	err = dump.normalizeSourceIdentities()
	assert.Nil(t, err)
	assert.EqualValues(t, before, dump.identities(StdinIdentity))
}

func TestExtractPrimaryModule(t *testing.T) {
	dump := decodeTestDump(t, testAstDump)
	err := dump.normalizeSourceIdentities()
	assert.Nil(t, err)

	// After extraction the primary module is a separate root and absent from
	// the dependency mapping.
	root, err := dump.extractPrimary(StdinIdentity)
	assert.Nil(t, err)
	assert.NotNil(t, root)
	assert.Len(t, root.Contracts, 1)
	assert.EqualValues(t, "A", root.Contracts[0].Name)
	assert.NotContains(t, dump, StdinIdentity)
	assert.Len(t, dump, 2)

	// Extracting a missing identity is an error.
	_, err = dump.extractPrimary(StdinIdentity)
	assert.Error(t, err)
}

func TestCanonicalFileURI(t *testing.T) {
	uri, err := canonicalFileURI("./dep1.scrypt")
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(uri, fileURIScheme))

	// The URI embeds the absolute path of the file.
	absolute, err := filepath.Abs("./dep1.scrypt")
	assert.Nil(t, err)
	assert.EqualValues(t, fileURIScheme+filepath.ToSlash(absolute), uri)
}

func TestModuleAstRetainsRawTree(t *testing.T) {
	dump := decodeTestDump(t, testAstDump)

	// The typed view and the raw tree are both available on a module.
	module := dump[StdinIdentity]
	assert.Len(t, module.Aliases, 1)
	assert.EqualValues(t, "Age", module.Aliases[0].Alias)
	assert.Contains(t, module.Raw(), "contracts")
	assert.Contains(t, module.Raw(), "alias")
}

func TestLiteralValueDecoding(t *testing.T) {
	dump := decodeTestDump(t, testAstDump)

	value := dump[StdinIdentity].Contracts[0].Statics[0].Expr.Value
	number, numeric := value.Decimal()
	assert.True(t, numeric)
	assert.EqualValues(t, "5", number.String())
	assert.EqualValues(t, "5", value.String())
}
