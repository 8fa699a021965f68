// Package service contains the application use cases. TaskService
// orchestrates classification and persistence behind the task lifecycle
// operations; it depends on store interfaces and a Classifier, never on a
// concrete database or provider.
//
// Error handling follows one pattern across the package:
//  1. Expected conditions return sentinel errors (ErrTaskNotFound, ErrInvalidInput)
//  2. Unexpected errors are wrapped in *ServiceError with the failing operation
//  3. The API layer maps both to HTTP status codes with errors.Is/errors.As
package service
