// Package openai implements generation.Backend on top of the OpenAI chat
// completions API. The same adapter serves DeepSeek, whose API is
// OpenAI-compatible, by pointing the client at a different base URL.
package openai
