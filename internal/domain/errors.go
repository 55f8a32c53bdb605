package domain

import "errors"

var (
	ErrSourceUnreadable  = errors.New("document source could not be read")
	ErrUnsupportedSource = errors.New("unsupported document source")
	ErrDocumentTooLarge  = errors.New("document exceeds maximum allowed size")
	ErrMalformedBlock    = errors.New("malformed block")
	ErrNoFinancialData   = errors.New("document has no financial data")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrEmptyRequestBody  = errors.New("request body is empty")
	ErrInvalidRubric     = errors.New("invalid rubric configuration")
)
