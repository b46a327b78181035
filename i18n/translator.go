package i18n

import "strings"

// Translator retrieves display messages for validation rule codes.
// data provides optional parameters to embed in the message (for example,
// "min" or "format").
type Translator interface {
	Message(code string, data map[string]string) string
}

// Rule codes understood by the built-in dictionary.
const (
	CodeRequired      = "required"
	CodeInvalidType   = "invalid_type"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeTooFewItems   = "too_few_items"
	CodeTooManyItems  = "too_many_items"
	CodePattern       = "pattern"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeFutureDate    = "future_date"
	CodeBeforeMinDate = "before_min_date"
	CodeAfterMaxDate  = "after_max_date"
)

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{}

func (dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch code {
	case CodeRequired:
		msg = "is required"
	case CodeInvalidType:
		msg = "has an invalid type"
	case CodeTooShort:
		msg = "must be at least {min} characters"
	case CodeTooLong:
		msg = "must be at most {max} characters"
	case CodeTooFewItems:
		msg = "must have at least {min} items"
	case CodeTooManyItems:
		msg = "must have at most {max} items"
	case CodePattern:
		msg = "has an invalid format"
	case CodeTooSmall:
		msg = "must be at least {min}"
	case CodeTooBig:
		msg = "must be at most {max}"
	case CodeInvalidEnum:
		msg = "is not a valid option"
	case CodeInvalidFormat:
		msg = "must be formatted as {format}"
	case CodeFutureDate:
		msg = "must not be in the future"
	case CodeBeforeMinDate:
		msg = "must not be before {min}"
	case CodeAfterMaxDate:
		msg = "must not be after {max}"
	default:
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

var currentTranslator Translator = dictTranslator{}

// SetTranslator replaces the Translator implementation. Passing nil restores
// the built-in dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
