package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings.
// This automatically stays in sync when new fields are added to Settings
func GetSettingsExample() map[string]any {
	t := reflect.TypeOf(Settings{})
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonName := jsonFieldName(field)
		if jsonName == "" {
			continue
		}
		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// GetSettingsKeys returns the sorted JSON keys accepted by settings.json
func GetSettingsKeys() []string {
	keys := make([]string, 0, len(GetSettingsExample()))
	for key := range GetSettingsExample() {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SetValue assigns a string value to the settings field with the given JSON key.
// An empty value clears the field.
func (s *Settings) SetValue(key, value string) error {
	v := reflect.ValueOf(s).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonFieldName(field) != key {
			continue
		}
		target := v.Field(i)

		if value == "" {
			target.Set(reflect.Zero(field.Type))
			return nil
		}

		switch {
		case field.Type.Kind() == reflect.String:
			target.SetString(value)
		case field.Type.Kind() == reflect.Slice:
			target.Set(reflect.ValueOf(StringArray(ParseCommaSeparated(value))))
		case field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Int:
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%s expects an integer: %w", key, err)
			}
			target.Set(reflect.ValueOf(&n))
		case field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s expects true or false: %w", key, err)
			}
			target.Set(reflect.ValueOf(&b))
		default:
			return fmt.Errorf("%s cannot be set from the command line", key)
		}
		return nil
	}

	return fmt.Errorf("unknown setting '%s' (valid: %s)", key, strings.Join(GetSettingsKeys(), ", "))
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	return strings.Split(tag, ",")[0]
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		switch t.Elem().Kind() {
		case reflect.Bool:
			return fieldName == "debug"
		case reflect.Int:
			switch fieldName {
			case "default_duration_minutes":
				return DefaultDurationMinutes
			case "error_clear_delay":
				return DefaultErrorClearDelay
			case "max_log_files":
				return 1000
			case "request_timeout_seconds":
				return DefaultRequestTimeoutSeconds
			case "total_weeks":
				return DefaultTotalWeeks
			}
			return 10
		}
	}

	switch t.Kind() {
	case reflect.String:
		switch fieldName {
		case "api_url":
			return DefaultAPIURL
		case "semester_start_date":
			return DefaultSemesterStartDate
		case "ssh_host":
			return DefaultSSHHost
		case "ssh_port":
			return DefaultSSHPort
		case "student_id":
			return "s1234567"
		case "time_up_message":
			return DefaultTimeUpMessage
		case "yes_no_state":
			return "student_answer_if_any_further_question"
		default:
			return "example"
		}
	case reflect.Slice:
		if fieldName == "courses" {
			return []string{"CS101_intro", "CS202_data_structures"}
		}
		return []string{"example1", "example2"}
	}

	return nil
}
