// Package api handles incoming HTTP requests, request validation and
// response formatting for the task and provider configuration endpoints.
// It translates HTTP concerns into task service calls and maps service
// errors onto status codes and safe messages.
package api
