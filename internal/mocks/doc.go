// Package mocks holds hand-written test doubles shared across packages.
//
// Each mock exposes one function field per interface method. A nil field
// falls back to a sensible default, and calls are recorded so tests can
// assert on what reached the dependency:
//
//	completer := &mocks.MockCompleter{
//	    CompleteFn: func(ctx context.Context, req llm.ChatRequest) (string, error) {
//	        return "priority: High\ncategory: Work", nil
//	    },
//	}
package mocks
