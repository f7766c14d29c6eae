// Package gemini implements generation.Backend using Google's Gemini API
// through the google.golang.org/genai client.
package gemini
