package core

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBClient defines the interface needed for scanning.
type DynamoDBClient interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoDBRecordSource reads order records by scanning a DynamoDB table
// whose attribute names match the CSV header layout. Scan order is not
// defined by DynamoDB, so block placement follows scan order.
type DynamoDBRecordSource struct {
	Client DynamoDBClient
	Table  string
}

func NewDynamoDBRecordSource(cfg aws.Config, table string) *DynamoDBRecordSource {
	return &DynamoDBRecordSource{
		Client: dynamodb.NewFromConfig(cfg),
		Table:  table,
	}
}

func (s *DynamoDBRecordSource) Fetch() ([]Record, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.Table),
	}

	paginator := dynamodb.NewScanPaginator(s.Client, input)
	var result []Record

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(context.TODO())
		if err != nil {
			return nil, fmt.Errorf("failed to scan table %s: %w", s.Table, err)
		}

		var items []map[string]interface{}
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items: %w", err)
		}
		for _, item := range items {
			rec := make(Record, len(item))
			for k, v := range item {
				if v == nil {
					rec[k] = ""
					continue
				}
				if str, ok := v.(string); ok {
					rec[k] = str
				} else {
					rec[k] = fmt.Sprintf("%v", v)
				}
			}
			result = append(result, rec)
		}
	}
	return result, nil
}
