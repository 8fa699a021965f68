// Package domain contains the task entity, its classification and the
// validation rules both must satisfy. It has no dependencies on storage,
// transport or the language model integration.
package domain
