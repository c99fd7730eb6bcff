package transport

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// payloadKeyCount counts the enumerable keys of a JSON body: object fields,
// array indices, string characters. Numbers, booleans and null have none.
// A body without keys is treated as not provided rather than invalid.
func payloadKeyCount(body []byte) (int, error) {
	var value interface{}
	if err := json.Unmarshal(body, &value); err != nil {
		return 0, err
	}

	switch v := value.(type) {
	case map[string]interface{}:
		return len(v), nil
	case []interface{}:
		return len(v), nil
	case string:
		return len(v), nil
	default:
		return 0, nil
	}
}

// firstValidationMessage translates the first failing field of a validator
// error into its payload message. Fields are validated in declaration order,
// so the first failure matches the first rule a reader sees on the struct.
func firstValidationMessage(err error, messages map[string]string) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		field := validationErrors[0].StructField()
		if message, ok := messages[field]; ok {
			return message
		}
		return field + " is invalid"
	}
	return err.Error()
}
