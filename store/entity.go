package store

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/AndreiLesi/aws-serverless-developer-ws/propertyid"
)

// Key attribute names.
const (
	AttrPK         = "PK"
	AttrSK         = "SK"
	AttrPropertyID = "property_id"
)

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// PropertyKey returns the primary key of a property record.
func PropertyKey(k propertyid.Key) PK {
	return PK{
		AttrPK: &types.AttributeValueMemberS{Value: k.PK},
		AttrSK: &types.AttributeValueMemberS{Value: k.SK},
	}
}

// ContractKey returns the primary key of a contract status record.
func ContractKey(propertyID string) PK {
	return PK{
		AttrPropertyID: &types.AttributeValueMemberS{Value: propertyID},
	}
}

// Item represents a retrieved DynamoDB item.
type Item struct {
	// Raw is the raw DynamoDB item.
	Raw map[string]types.AttributeValue
}

// Unmarshal decodes the item into out using dynamodbav struct tags.
func (i *Item) Unmarshal(out any) error {
	return attributevalue.UnmarshalMap(i.Raw, out)
}

// ContractStatus is a record of the contract status table.
type ContractStatus struct {
	PropertyID             string `dynamodbav:"property_id" json:"property_id"`
	ContractID             string `dynamodbav:"contract_id" json:"contract_id"`
	ContractStatus         string `dynamodbav:"contract_status" json:"contract_status"`
	ContractLastModifiedOn string `dynamodbav:"contract_last_modified_on" json:"contract_last_modified_on"`
}
