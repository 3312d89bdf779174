package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/picogrid/cosim-input/pkg/editor"
	"github.com/picogrid/cosim-input/pkg/logger"
	"github.com/picogrid/cosim-input/pkg/models"
)

// SkipPromptsEnv disables interactive prompts (for CI/automation). Prompts then return
// COSIM_<FIELD> overrides or the current value.
const SkipPromptsEnv = "COSIM_SKIP_PROMPTS"

// SkipPrompts reports whether interactive prompts are disabled
func SkipPrompts() bool {
	return os.Getenv(SkipPromptsEnv) == "true"
}

// ParseFieldValue converts prompt text into the value type f expects
func ParseFieldValue(f models.Field, s string) (interface{}, error) {
	s = strings.TrimSpace(s)
	switch f.Type {
	case models.FieldInteger:
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, models.NewValidationError(f.Name, "invalid integer %q", s)
		}
		return v, nil
	case models.FieldFloat:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, models.NewValidationError(f.Name, "invalid number %q", s)
		}
		return v, nil
	case models.FieldString:
		return s, nil
	case models.FieldTime:
		t, err := models.ParseTimeOfDay(s)
		if err != nil {
			return nil, models.NewValidationError(f.Name, "%v", err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported field type: %s", f.Type)
	}
}

// FormatFieldValue renders a field value as prompt text
func FormatFieldValue(v interface{}) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FieldLabel returns the prompt label for f, with its unit when it has one
func FieldLabel(f models.Field) string {
	if f.Unit != "" {
		return fmt.Sprintf("%s (%s):", f.Description, f.Unit)
	}
	return f.Description + ":"
}

// PromptField asks for one field of rec. Answers are checked against rec.WithField so a
// rejected value is re-asked in place.
func PromptField[T models.Record[T]](rec T, f models.Field) (interface{}, error) {
	current, err := rec.Value(f.Name)
	if err != nil {
		return nil, err
	}

	envKey := "COSIM_" + strings.ToUpper(f.Name)
	if SkipPrompts() {
		if envValue := os.Getenv(envKey); envValue != "" {
			return ParseFieldValue(f, envValue)
		}
		return current, nil
	}

	defaultStr := FormatFieldValue(current)
	if envValue := os.Getenv(envKey); envValue != "" {
		defaultStr = envValue
	}

	prompt := &survey.Input{
		Message: FieldLabel(f),
		Default: defaultStr,
	}

	var result string
	if err := survey.AskOne(prompt, &result, survey.WithValidator(func(val interface{}) error {
		str, _ := val.(string)
		v, err := ParseFieldValue(f, str)
		if err != nil {
			return err
		}
		_, err = rec.WithField(f.Name, v)
		return err
	})); err != nil {
		return nil, err
	}

	return ParseFieldValue(f, result)
}

// ParseCount converts prompt text into a record-list length within the editor bounds
func ParseCount(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, models.NewValidationError(field, "invalid integer %q", s)
	}
	if err := models.CheckRecordCount(field, n); err != nil {
		return 0, err
	}
	return n, nil
}

// PromptCount asks for a record-list length between editor.MinCount and editor.MaxCount
func PromptCount(field, message string, current int) (int, error) {
	if SkipPrompts() {
		return current, nil
	}

	prompt := &survey.Input{
		Message: message,
		Default: strconv.Itoa(current),
	}

	var result string
	if err := survey.AskOne(prompt, &result, survey.WithValidator(func(val interface{}) error {
		str, _ := val.(string)
		_, err := ParseCount(field, str)
		return err
	})); err != nil {
		return 0, err
	}

	return ParseCount(field, result)
}

// Confirm asks a yes/no question. With prompts skipped it returns def.
func Confirm(message string, def bool) (bool, error) {
	if SkipPrompts() {
		return def, nil
	}

	var result bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &result); err != nil {
		return false, err
	}
	return result, nil
}

// EditRecords runs the interactive form for one record-list editor: the list length,
// then every field of every visible entry, then commit or discard. It reports whether
// the draft was committed. The editor is always closed on return.
func EditRecords[T models.Record[T]](ed *editor.RecordListEditor[T]) (bool, error) {
	kind := ed.Kind()

	n, err := PromptCount(kind.CountKey, fmt.Sprintf("Number of %s entries:", strings.ToLower(kind.Label)), ed.Len())
	if err != nil {
		ed.Discard()
		return false, err
	}
	if err := ed.Resize(n); err != nil {
		ed.Discard()
		return false, err
	}

	for i := 0; i < ed.Len(); i++ {
		logger.LogSubSection(fmt.Sprintf("%s %d", kind.Label, i+1))

		entry, err := ed.Entry(i)
		if err != nil {
			ed.Discard()
			return false, err
		}
		for _, f := range entry.Fields() {
			v, err := PromptField(entry, f)
			if err != nil {
				ed.Discard()
				return false, err
			}
			if err := ed.EditField(i, f.Name, v); err != nil {
				ed.Discard()
				return false, err
			}
			if entry, err = ed.Entry(i); err != nil {
				ed.Discard()
				return false, err
			}
		}
	}

	apply, err := Confirm("Apply changes?", true)
	if err != nil || !apply {
		ed.Discard()
		return false, err
	}
	if err := ed.Commit(); err != nil {
		ed.Discard()
		return false, err
	}
	return true, nil
}

// EditSettings runs the interactive form for the system settings. A cross-field
// rejection at commit re-runs the form with the draft kept.
func EditSettings(ed *editor.SettingsEditor) (bool, error) {
	for {
		for _, f := range ed.Draft().Fields() {
			v, err := PromptField(ed.Draft(), f)
			if err != nil {
				ed.Discard()
				return false, err
			}
			if err := ed.EditField(f.Name, v); err != nil {
				ed.Discard()
				return false, err
			}
		}

		apply, err := Confirm("Apply settings?", true)
		if err != nil || !apply {
			ed.Discard()
			return false, err
		}

		err = ed.Commit()
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, models.ErrValidation) || SkipPrompts() {
			ed.Discard()
			return false, err
		}
		logger.Warnf("%v", err)
	}
}
