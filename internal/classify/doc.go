// Package classify turns a task title and description into a
// domain.Classification using a language model.
//
// Model replies are expected to be a YAML mapping, optionally wrapped in a
// code fence. Replies are stripped, decoded with yaml.v3 and validated;
// anything that does not validate is retried and, once the attempt budget
// is spent, replaced by domain.FallbackClassification.
package classify
