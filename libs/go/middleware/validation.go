package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ValidationRule defines a single validation rule
type ValidationRule struct {
	Field         string                  // Field name to validate
	Required      bool                    // Whether the field is required
	Type          string                  // string, number, decimal, boolean, uuid, array, object
	MinLength     int                     // Minimum length for strings
	MaxLength     int                     // Maximum length for strings
	Pattern       string                  // Regex pattern for validation
	Min           *float64                // Minimum value for numbers
	Max           *float64                // Maximum value for numbers
	MinDecimal    *decimal.Decimal        // Lower bound for decimal amounts
	AllowedValues []string                // List of allowed values
	MaxItems      int                     // Maximum length for arrays
	Custom        func(interface{}) error // Custom validation function
}

// ValidationConfig holds validation rules for an endpoint
type ValidationConfig struct {
	Rules              []ValidationRule
	MaxBodySize        int64 // Maximum request body size in bytes
	AllowUnknownFields bool  // Whether to allow fields not in rules
}

// CurrencyRegex matches a three letter ISO 4217 code
var CurrencyRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)

// ValidationError is one rejected field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// ValidateInput creates a validation middleware with the given configuration.
// The body is decoded with UseNumber so decimal amounts keep their precision.
func ValidateInput(config ValidationConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.MaxBodySize > 0 && c.Request.ContentLength > config.MaxBodySize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("Request body too large. Maximum size: %d bytes", config.MaxBodySize),
			})
			return
		}

		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unable to read request body"})
			return
		}

		var body map[string]interface{}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil || body == nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
			return
		}

		if errs := validateFields(body, config.Rules, config.AllowUnknownFields); len(errs) > 0 {
			LogWithCorrelationID(c.Request.Context()).Debug("Request body rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Any("errors", errs))
			c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrors{Errors: errs})
			return
		}

		c.Set("validatedBody", body)
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		c.Next()
	}
}

// validateFields validates the fields according to the rules
func validateFields(data map[string]interface{}, rules []ValidationRule, allowUnknown bool) []ValidationError {
	var errs []ValidationError
	known := make(map[string]bool, len(rules))

	for _, rule := range rules {
		known[rule.Field] = true
		value, exists := data[rule.Field]

		if !exists || value == nil || value == "" {
			if rule.Required {
				errs = append(errs, ValidationError{Field: rule.Field, Message: fmt.Sprintf("%s is required", rule.Field)})
			}
			continue
		}

		if err := validateValue(value, rule); err != nil {
			errs = append(errs, ValidationError{Field: rule.Field, Message: err.Error()})
			continue
		}

		if rule.Custom != nil {
			if err := rule.Custom(value); err != nil {
				errs = append(errs, ValidationError{Field: rule.Field, Message: err.Error()})
			}
		}
	}

	if !allowUnknown {
		for field := range data {
			if !known[field] {
				errs = append(errs, ValidationError{Field: field, Message: "unknown field"})
			}
		}
	}

	return errs
}

func validateValue(value interface{}, rule ValidationRule) error {
	switch rule.Type {
	case "string":
		return validateString(value, rule)
	case "number", "int":
		return validateNumber(value, rule)
	case "decimal":
		return validateDecimal(value, rule)
	case "boolean", "bool":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("must be a boolean")
		}
	case "uuid":
		return validateUUID(value)
	case "array":
		items, ok := value.([]interface{})
		if !ok {
			return fmt.Errorf("must be an array")
		}
		if rule.MaxItems > 0 && len(items) > rule.MaxItems {
			return fmt.Errorf("must have at most %d items", rule.MaxItems)
		}
	case "object":
		if _, ok := value.(map[string]interface{}); !ok {
			return fmt.Errorf("must be an object")
		}
	}
	return nil
}

func validateString(value interface{}, rule ValidationRule) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}

	length := utf8.RuneCountInString(str)
	if rule.MinLength > 0 && length < rule.MinLength {
		return fmt.Errorf("must be at least %d characters long", rule.MinLength)
	}
	if rule.MaxLength > 0 && length > rule.MaxLength {
		return fmt.Errorf("must be at most %d characters long", rule.MaxLength)
	}

	if rule.Pattern != "" {
		regex, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("invalid validation pattern")
		}
		if !regex.MatchString(str) {
			return fmt.Errorf("invalid format")
		}
	}

	if len(rule.AllowedValues) > 0 {
		for _, v := range rule.AllowedValues {
			if str == v {
				return nil
			}
		}
		return fmt.Errorf("must be one of: %s", strings.Join(rule.AllowedValues, ", "))
	}

	return nil
}

func validateNumber(value interface{}, rule ValidationRule) error {
	var num float64
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		num = f
	case float64:
		num = v
	default:
		return fmt.Errorf("must be a number")
	}

	if rule.Type == "int" && num != float64(int64(num)) {
		return fmt.Errorf("must be a whole number")
	}
	if rule.Min != nil && num < *rule.Min {
		return fmt.Errorf("must be at least %v", *rule.Min)
	}
	if rule.Max != nil && num > *rule.Max {
		return fmt.Errorf("must be at most %v", *rule.Max)
	}
	return nil
}

// validateDecimal accepts a JSON string or number holding an exact decimal
func validateDecimal(value interface{}, rule ValidationRule) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case json.Number:
		raw = v.String()
	case float64:
		raw = decimal.NewFromFloat(v).String()
	default:
		return fmt.Errorf("must be a decimal amount")
	}

	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("must be a decimal amount")
	}
	if rule.MinDecimal != nil && d.LessThan(*rule.MinDecimal) {
		return fmt.Errorf("must be at least %s", rule.MinDecimal.String())
	}
	return nil
}

func validateUUID(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	if _, err := uuid.Parse(str); err != nil {
		return fmt.Errorf("must be a valid UUID")
	}
	return nil
}

func float64Ptr(f float64) *float64 {
	return &f
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
