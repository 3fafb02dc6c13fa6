package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
initial_liquid_wealth: 100000
initial_property_value: 500000
initial_mortgage: 400000
gross_annual_income: 75000
effective_tax_rate: 0.25
pension_contribution_rate: 0.10
monthly_expenses: 3000
monthly_mortgage_payment: 2000
expected_return: 0.05
return_volatility: 0.10
expected_inflation: 0.02
inflation_volatility: 0.01
years: 10
paths: 100
seed: 42
starting_age: 35
retirement_age: 65
events:
  - type: windfall
    year: 3
    name: inheritance
    amount: 50000
spouse:
  age: 33
  retirement_age: 65
  gross_annual_income: 50000
`

const tomlConfig = `
initial_liquid_wealth = "100000"
initial_property_value = "500000"
initial_mortgage = "400000"
gross_annual_income = "75000"
effective_tax_rate = "0.25"
pension_contribution_rate = "0.10"
monthly_expenses = "3000"
monthly_mortgage_payment = "2000"
expected_return = "0.05"
return_volatility = "0.10"
expected_inflation = "0.02"
inflation_volatility = "0.01"
years = 10
paths = 100
seed = 42
starting_age = 35
retirement_age = 65

[[events]]
type = "windfall"
year = 3
name = "inheritance"
amount = "50000"

[spouse]
age = 33
retirement_age = 65
gross_annual_income = "50000"
`

const jsonConfig = `{
  "initial_liquid_wealth": 100000,
  "initial_property_value": 500000,
  "initial_mortgage": 400000,
  "gross_annual_income": 75000,
  "effective_tax_rate": 0.25,
  "pension_contribution_rate": 0.10,
  "monthly_expenses": 3000,
  "monthly_mortgage_payment": 2000,
  "expected_return": 0.05,
  "return_volatility": 0.10,
  "expected_inflation": 0.02,
  "inflation_volatility": 0.01,
  "years": 10,
  "paths": 100,
  "seed": 42,
  "starting_age": 35,
  "retirement_age": 65,
  "events": [
    {"type": "windfall", "year": 3, "name": "inheritance", "amount": 50000}
  ],
  "spouse": {"age": 33, "retirement_age": 65, "gross_annual_income": 50000}
}`

func TestParse_FormatsAgree(t *testing.T) {
	parser := NewInputParser()

	fromYAML, err := parser.Parse([]byte(yamlConfig), ".yaml")
	require.NoError(t, err)
	fromTOML, err := parser.Parse([]byte(tomlConfig), ".toml")
	require.NoError(t, err)
	fromJSON, err := parser.Parse([]byte(jsonConfig), ".json")
	require.NoError(t, err)

	assert.True(t, fromYAML.InitialLiquidWealth.Equal(decimal.NewFromInt(100000)))
	assert.True(t, fromYAML.InitialNetWorth().Equal(fromTOML.InitialNetWorth()), "YAML and TOML decode the same document")
	assert.True(t, fromYAML.InitialNetWorth().Equal(fromJSON.InitialNetWorth()), "YAML and JSON decode the same document")
	assert.Equal(t, fromYAML.Years, fromTOML.Years)
	assert.Equal(t, fromYAML.Seed, fromJSON.Seed)

	require.Len(t, fromTOML.Events, 1)
	assert.True(t, fromTOML.Events[0].Amount.Equal(fromYAML.Events[0].Amount), "Event amounts agree across formats")
	require.NotNil(t, fromJSON.Spouse)
	assert.True(t, fromJSON.Spouse.GrossAnnualIncome.Equal(fromYAML.Spouse.GrossAnnualIncome))
}

func TestParse_AppliesDefaults(t *testing.T) {
	parser := NewInputParser()

	cfg, err := parser.Parse([]byte(`
gross_annual_income: 60000
starting_age: 30
retirement_age: 65
`), ".yaml")
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Paths, "Paths default when omitted")
	assert.Equal(t, 30, cfg.Years, "Years default when omitted")
	assert.Equal(t, int64(42), cfg.Seed, "Seed defaults when omitted")
}

func TestParse_ExplicitZerosAreNotDefaulted(t *testing.T) {
	parser := NewInputParser()

	// An explicit zero is a value, not an omission: it must reach
	// validation rather than being silently replaced by a default.
	_, err := parser.Parse([]byte(`
gross_annual_income: 60000
starting_age: 30
retirement_age: 65
years: 0
`), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "years must be positive")

	_, err = parser.Parse([]byte(`
gross_annual_income: 60000
starting_age: 30
retirement_age: 65
paths: 0
`), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paths must be positive")
}

func TestParse_ExplicitZeroSeed(t *testing.T) {
	parser := NewInputParser()

	cfg, err := parser.Parse([]byte(`
gross_annual_income: 60000
starting_age: 30
retirement_age: 65
seed: 0
`), ".yaml")
	require.NoError(t, err)

	assert.Equal(t, int64(0), cfg.Seed, "Seed zero is selectable from a config file")
}

func TestParse_ValidationFailure(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.Parse([]byte(`
starting_age: 65
retirement_age: 60
`), ".yaml")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "retirement age", "Validation errors are descriptive")
}

func TestParse_MalformedInput(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.Parse([]byte("{not valid yaml: ["), ".yaml")
	assert.Error(t, err)

	_, err = parser.Parse([]byte("years = oops"), ".toml")
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "household.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0o644))

	cfg, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Years)

	_, err = NewInputParser().LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "Missing files surface a read error")
}
