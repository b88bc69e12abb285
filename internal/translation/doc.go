// Package translation provides the translation backends behind the
// translator: OpenAI and Gemini providers, a circuit breaker and an
// in-memory cache that wrap any provider, and the language catalog the
// LLM backends advertise.
package translation
