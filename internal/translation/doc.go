// Package translation provides English/Dutch translation services using the
// OpenAI or Gemini APIs, guarded by a circuit breaker. It includes the
// session-wide translation cache that deduplicates concurrent lookups and
// memoizes language detection.
package translation
