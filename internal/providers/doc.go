// Package providers generates screen HTML from natural-language
// descriptions. The OpenAI provider talks to a chat-completions endpoint
// through a retrying HTTP client guarded by a circuit breaker; the mock
// provider renders deterministic placeholder screens for offline use.
// Generated markup passes through one sanitizer policy before it leaves
// this package.
package providers
