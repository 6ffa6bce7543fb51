package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Issue describes a single violated rule for one field.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Kind selects the value check applied to a field.
type Kind int

const (
	KindString Kind = iota
	KindEmail
	KindPassword
	KindEnum
	KindInt
	KindStringSlice
)

// FieldRule declares constraints for one payload field.
type FieldRule struct {
	Name     string
	Kind     Kind
	Required bool
	MinLen   int
	MaxLen   int
	Enum     []string
}

// Schema validates one entity's create or update payload. Update variants are
// derived once at startup via Optional, never per call.
type Schema struct {
	Entity string
	Fields []FieldRule
	// ExactlyOne lists fields of which exactly one must be present.
	ExactlyOne []string
}

// Optional returns a copy of the schema with every field made optional,
// giving partial-update semantics: absent fields are left untouched.
func (s Schema) Optional() Schema {
	fields := make([]FieldRule, len(s.Fields))
	copy(fields, s.Fields)
	for i := range fields {
		fields[i].Required = false
	}
	return Schema{Entity: s.Entity, Fields: fields}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks payload against the schema and returns every violated rule.
// An empty result means the payload is acceptable.
func (s Schema) Validate(payload map[string]any) []Issue {
	var issues []Issue

	for _, rule := range s.Fields {
		value, present := payload[rule.Name]
		if !present || value == nil {
			if rule.Required {
				issues = append(issues, Issue{Field: rule.Name, Message: fmt.Sprintf("%s is required", rule.Name)})
			}
			continue
		}
		issues = append(issues, rule.check(value)...)
	}

	if len(s.ExactlyOne) > 0 {
		count := 0
		for _, name := range s.ExactlyOne {
			if value, present := payload[name]; present && value != nil {
				count++
			}
		}
		if count != 1 {
			issues = append(issues, Issue{
				Field:   strings.Join(s.ExactlyOne, "|"),
				Message: fmt.Sprintf("exactly one of %s must be provided", strings.Join(s.ExactlyOne, ", ")),
			})
		}
	}

	return issues
}

func (r FieldRule) check(value any) []Issue {
	switch r.Kind {
	case KindString, KindEmail, KindPassword, KindEnum:
		str, ok := value.(string)
		if !ok {
			return []Issue{{Field: r.Name, Message: fmt.Sprintf("%s must be a string", r.Name)}}
		}
		return r.checkString(str)
	case KindInt:
		// JSON numbers decode as float64.
		num, ok := value.(float64)
		if !ok || num != float64(int64(num)) {
			return []Issue{{Field: r.Name, Message: fmt.Sprintf("%s must be an integer", r.Name)}}
		}
		if num <= 0 {
			return []Issue{{Field: r.Name, Message: fmt.Sprintf("%s must be positive", r.Name)}}
		}
		return nil
	case KindStringSlice:
		items, ok := value.([]any)
		if !ok {
			return []Issue{{Field: r.Name, Message: fmt.Sprintf("%s must be an array of strings", r.Name)}}
		}
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return []Issue{{Field: r.Name, Message: fmt.Sprintf("%s must be an array of strings", r.Name)}}
			}
		}
		return nil
	default:
		return nil
	}
}

func (r FieldRule) checkString(str string) []Issue {
	var issues []Issue
	length := len([]rune(str))

	if r.Kind == KindPassword {
		// Every violated password rule surfaces as its own issue so a client
		// sees all problems in one response.
		if length < 8 {
			issues = append(issues, Issue{Field: r.Name, Message: "password must be at least 8 characters long"})
		}
		if !strings.ContainsFunc(str, unicode.IsUpper) {
			issues = append(issues, Issue{Field: r.Name, Message: "password must contain an uppercase letter"})
		}
		if !strings.ContainsFunc(str, unicode.IsDigit) {
			issues = append(issues, Issue{Field: r.Name, Message: "password must contain a digit"})
		}
		if !strings.ContainsFunc(str, func(c rune) bool {
			return !unicode.IsLetter(c) && !unicode.IsDigit(c)
		}) {
			issues = append(issues, Issue{Field: r.Name, Message: "password must contain a special character"})
		}
		return issues
	}

	if r.MinLen > 0 && length < r.MinLen {
		issues = append(issues, Issue{Field: r.Name, Message: fmt.Sprintf("%s must be at least %d characters long", r.Name, r.MinLen)})
	}
	if r.MaxLen > 0 && length > r.MaxLen {
		issues = append(issues, Issue{Field: r.Name, Message: fmt.Sprintf("%s must be at most %d characters long", r.Name, r.MaxLen)})
	}

	switch r.Kind {
	case KindEmail:
		if !emailPattern.MatchString(str) {
			issues = append(issues, Issue{Field: r.Name, Message: fmt.Sprintf("%s must be a valid email address", r.Name)})
		}
	case KindEnum:
		found := false
		for _, allowed := range r.Enum {
			if str == allowed {
				found = true
				break
			}
		}
		if !found {
			issues = append(issues, Issue{
				Field:   r.Name,
				Message: fmt.Sprintf("%s must be one of: %s", r.Name, strings.Join(r.Enum, ", ")),
			})
		}
	}

	return issues
}

// IssueMaps shapes issues for the error response details payload.
func IssueMaps(issues []Issue) []map[string]any {
	out := make([]map[string]any, 0, len(issues))
	for _, issue := range issues {
		out = append(out, map[string]any{"field": issue.Field, "message": issue.Message})
	}
	return out
}
