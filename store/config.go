package store

// Config holds configuration for the Store.
type Config struct {
	// PropertiesTable is the name of the table holding property records.
	// Default: "properties"
	PropertiesTable string

	// ContractStatusTable is the name of the table holding contract status records.
	// Default: "contract_status"
	ContractStatusTable string
}

// DefaultConfig returns default table names.
func DefaultConfig() Config {
	return Config{
		PropertiesTable:     "properties",
		ContractStatusTable: "contract_status",
	}
}

// validate fills in defaults for empty table names.
func (c *Config) validate() {
	if c.PropertiesTable == "" {
		c.PropertiesTable = "properties"
	}
	if c.ContractStatusTable == "" {
		c.ContractStatusTable = "contract_status"
	}
}
