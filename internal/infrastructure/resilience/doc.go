// Package resilience implements a circuit breaker used to guard outbound
// generation-provider calls. A run of failures opens the circuit; after a
// cool-down it admits a limited number of trial requests before closing
// again. Open-circuit rejections fail fast instead of tying up the
// generation pipeline on a provider that is down.
package resilience
