// Package store provides DynamoDB access for property and contract status records.
//
// Two tables are involved:
//
//   - the properties table, keyed by a composite "PK"/"SK" pair derived from a
//     property identifier by [propertyid.KeyFor]
//   - the contract status table, keyed by "property_id"
//
// Handlers never build keys themselves. Property records are addressed with
// [PropertyKey], contract records with [ContractKey].
//
// # Configuration
//
// Table names come from [Config]. [DefaultConfig] returns names suitable for
// local testing; deployments override them from the environment:
//
//	cfg := store.DefaultConfig()
//	cfg.PropertiesTable = os.Getenv("DYNAMODB_TABLE")
//	s := store.New(dynamodb.NewFromConfig(awsCfg), cfg)
//
// # Errors
//
//   - [ErrNotFound] - item doesn't exist
//   - [ErrTableNotFound] - table doesn't exist or isn't active
//   - [ErrNoAttributes] - update called without attributes to set
package store
