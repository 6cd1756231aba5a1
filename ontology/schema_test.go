package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	t.Run("builds default schema", func(t *testing.T) {
		schema, err := NewSchema()
		require.NoError(t, err)
		require.NotNil(t, schema)

		assert.NotEmpty(t, schema.EntityTypes())
		assert.NotEmpty(t, schema.RelationTypes())
	})

	t.Run("rejects cyclic hierarchy", func(t *testing.T) {
		schema, err := NewSchema(
			WithClass(Class{URI: NSRisk + "A", Label: "A", ParentURI: NSRisk + "B"}),
			WithClass(Class{URI: NSRisk + "B", Label: "B", ParentURI: NSRisk + "A"}),
		)
		require.Error(t, err)
		assert.Nil(t, schema)
		assert.Contains(t, err.Error(), "cyclic")
	})

	t.Run("rejects self-parent", func(t *testing.T) {
		_, err := NewSchema(
			WithClass(Class{URI: NSRisk + "Ouroboros", Label: "Ouroboros", ParentURI: NSRisk + "Ouroboros"}),
		)
		require.Error(t, err)
	})
}

func TestSchemaLookups(t *testing.T) {
	schema, err := NewSchema()
	require.NoError(t, err)

	t.Run("class by URI and local name", func(t *testing.T) {
		byURI := schema.Class(NSRisk + "SupplyChainRisk")
		require.NotNil(t, byURI)
		byName := schema.Class("SupplyChainRisk")
		require.NotNil(t, byName)
		assert.Equal(t, byURI.URI, byName.URI)
	})

	t.Run("entity type mapping", func(t *testing.T) {
		assert.Equal(t, NSCompany+"PublicCompany", schema.MapEntityType("Company"))
		assert.Equal(t, NSFinancial+"Revenue", schema.MapEntityType("Revenue"))
		assert.Equal(t, "", schema.MapEntityType("Spaceship"))
	})

	t.Run("relation type mapping", func(t *testing.T) {
		assert.Equal(t, NSCompany+"competesWith", schema.MapRelationType("COMPETES_WITH"))
		assert.Equal(t, NSRisk+"facesRisk", schema.MapRelationType("FACES_RISK"))
		assert.Equal(t, "", schema.MapRelationType("ORBITS"))
	})

	t.Run("alias resolution", func(t *testing.T) {
		assert.Equal(t, NSFinancial+"NetIncome", schema.ResolveAlias("net profit"))
		assert.Equal(t, NSFinancial+"NetIncome", schema.ResolveAlias("  Earnings "))
		assert.Equal(t, NSRisk+"CybersecurityRisk", schema.ResolveAlias("cyber risk"))
		assert.Equal(t, "", schema.ResolveAlias("flux capacitor"))
	})
}

func TestClassHierarchy(t *testing.T) {
	schema, err := NewSchema()
	require.NoError(t, err)

	t.Run("walks to root", func(t *testing.T) {
		chain := schema.ClassHierarchy(NSRisk + "CurrencyRisk")
		assert.Equal(t, []string{
			NSRisk + "CurrencyRisk",
			NSRisk + "MarketRisk",
			NSRisk + "FinancialRisk",
			NSRisk + "Risk",
		}, chain)
	})

	t.Run("root class has single-element chain", func(t *testing.T) {
		chain := schema.ClassHierarchy(NSRisk + "Risk")
		assert.Equal(t, []string{NSRisk + "Risk"}, chain)
	})

	t.Run("unknown class returns itself", func(t *testing.T) {
		chain := schema.ClassHierarchy("urn:nowhere")
		assert.Equal(t, []string{"urn:nowhere"}, chain)
	})

	t.Run("subclass checks", func(t *testing.T) {
		assert.True(t, schema.IsSubclassOf(NSRisk+"SupplyChainRisk", NSRisk+"Risk"))
		assert.True(t, schema.IsSubclassOf(NSCompany+"PublicCompany", NSCompany+"Organization"))
		assert.True(t, schema.IsSubclassOf(NSRisk+"Risk", NSRisk+"Risk"))
		assert.False(t, schema.IsSubclassOf(NSRisk+"Risk", NSRisk+"SupplyChainRisk"))
		assert.False(t, schema.IsSubclassOf(NSCompany+"Person", NSCompany+"Company"))
	})
}

func TestValidateRelation(t *testing.T) {
	schema, err := NewSchema()
	require.NoError(t, err)

	t.Run("accepts valid combinations", func(t *testing.T) {
		assert.True(t, schema.ValidateRelation("Company", "COMPETES_WITH", "Company"))
		assert.True(t, schema.ValidateRelation("Company", "REPORTED", "Revenue"))
		assert.True(t, schema.ValidateRelation("Company", "REPORTED", "MonetaryAmount"))
		assert.True(t, schema.ValidateRelation("Person", "CEO_OF", "Company"))
	})

	t.Run("range satisfied by subclass of declared class", func(t *testing.T) {
		// FACES_RISK declares range Risk; every risk subtype qualifies.
		assert.True(t, schema.ValidateRelation("Company", "FACES_RISK", "SupplyChainRisk"))
		assert.True(t, schema.ValidateRelation("Company", "FACES_RISK", "CurrencyRisk"))
		assert.True(t, schema.ValidateRelation("Company", "FACES_RISK", "Risk"))
	})

	t.Run("rejects domain or range violations", func(t *testing.T) {
		assert.False(t, schema.ValidateRelation("Person", "COMPETES_WITH", "Company"))
		assert.False(t, schema.ValidateRelation("Company", "FACES_RISK", "Company"))
		assert.False(t, schema.ValidateRelation("Company", "CEO_OF", "Company"))
		assert.False(t, schema.ValidateRelation("Revenue", "REPORTED", "Company"))
	})

	t.Run("unknown relation type is unconstrained", func(t *testing.T) {
		assert.True(t, schema.ValidateRelation("Person", "ORBITS", "Company"))
	})

	t.Run("unmapped entity type is unconstrained", func(t *testing.T) {
		assert.True(t, schema.ValidateRelation("Spaceship", "COMPETES_WITH", "Company"))
		assert.True(t, schema.ValidateRelation("Company", "COMPETES_WITH", "Spaceship"))
	})
}
