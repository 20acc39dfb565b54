package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAliasTable(t *testing.T) {
	dump := decodeTestDump(t, testAstDump)
	err := dump.normalizeSourceIdentities()
	assert.Nil(t, err)

	// Aliases are flattened across every module, primary first, without
	// deduplication.
	aliases := buildAliasTable(dump, dump.identities(StdinIdentity))
	assert.Len(t, aliases, 2)
	assert.EqualValues(t, AliasEntry{Name: "Age", Type: "int"}, aliases[0])
	assert.EqualValues(t, AliasEntry{Name: "Coins", Type: "int"}, aliases[1])
}

func TestBuildStaticConstTable(t *testing.T) {
	dump := decodeTestDump(t, testAstDump)
	err := dump.normalizeSourceIdentities()
	assert.Nil(t, err)

	// Contracts A (static N=5) and B (static M=10) yield exactly two entries.
	table, err := buildStaticConstTable(dump, dump.identities(StdinIdentity))
	assert.Nil(t, err)
	assert.EqualValues(t, []string{"A.N", "B.M"}, table.QualifiedNames())

	n, numeric := table["A.N"].Decimal()
	assert.True(t, numeric)
	assert.EqualValues(t, "5", n.String())

	m, numeric := table["B.M"].Decimal()
	assert.True(t, numeric)
	assert.EqualValues(t, "10", m.String())
}

func TestStaticConstTableRejectsDuplicates(t *testing.T) {
	// Two modules declaring the same qualified constant indicate a malformed
	// dump and must not silently overwrite each other.
	const duplicated = `{
		"stdin": {
			"contracts": [{"name": "A", "statics": [{"name": "N", "expr": {"value": 5}}]}],
			"alias": []
		},
		"file:///tmp/dup.scrypt": {
			"contracts": [{"name": "A", "statics": [{"name": "N", "expr": {"value": 7}}]}],
			"alias": []
		}
	}`
	dump := decodeTestDump(t, duplicated)

	_, err := buildStaticConstTable(dump, dump.identities(StdinIdentity))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "A.N")
}
