// Package models lists the OpenAI chat models that can serve as the
// translation backend, so users can pick one for --model.
package models
