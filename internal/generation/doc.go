// Package generation turns product listing requests into validated
// domain.GeneratedContent records by delegating to external AI/LLM backends.
//
// The pipeline for every task is the same: validate the request, resolve a
// backend with the required capability from the Registry, render prompts
// with the PromptBuilder, invoke the backend once, and run the raw reply
// through the ResponseParser. Backends are adapters living under internal/platform;
// this package only knows the Backend interface.
//
// Failures surface as *Error values whose Kind is one of the sentinel errors
// in errors.go, so callers can branch with errors.Is.
package generation
