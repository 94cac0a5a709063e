package openapi

import "errors"

var (
	// ErrOperationNotFound reports an operation ID absent from the document.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody reports an operation without a usable object schema.
	ErrNoRequestBody = errors.New("openapi: operation has no form request body")
)
