// Package models lists the OpenAI chat models available to the configured
// API key, so users can pick one for translation.
package models
