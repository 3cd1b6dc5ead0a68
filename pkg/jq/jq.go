package jq

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/itchyny/gojq"
)

func PerformJqQueryOnFile(filePath string, jqQuery string) ([]byte, error) {
	// Read the content of the JSON file
	jsonContent, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return PerformJqQuery(jsonContent, jqQuery)
}

func PerformJqQuery(jsonContent []byte, jqQuery string) ([]byte, error) {
	// Create a new jq processor
	query, err := gojq.Parse(jqQuery)
	if err != nil {
		return nil, err
	}

	var jsonData interface{}
	if err := json.Unmarshal(jsonContent, &jsonData); err != nil {
		return nil, err
	}

	// Process the JSON content using the jq query
	iter := query.Run(jsonData)
	v, ok := iter.Next()
	if !ok {
		return nil, fmt.Errorf("key not found")
	}
	if err, ok := v.(error); ok {
		return nil, err
	}

	result, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ExtractField collects the named field from every record of a JSON array.
// Records missing the field contribute an empty string, so the slice length
// always equals the record count.
func ExtractField(jsonContent []byte, field string) ([]string, error) {
	result, err := PerformJqQuery(jsonContent, fmt.Sprintf("[.[] | .%s]", field))
	if err != nil {
		return nil, err
	}

	var raw []any
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, err
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		s, _ := v.(string)
		values = append(values, s)
	}
	return values, nil
}

// CountByField counts the records of a JSON array by extracting the named
// field from each, the jq equivalent of `.[].name | wc -l`.
func CountByField(jsonContent []byte, field string) (int, error) {
	values, err := ExtractField(jsonContent, field)
	if err != nil {
		return 0, err
	}
	return len(values), nil
}
