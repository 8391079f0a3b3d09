// Package agent implements the dispatch engine's capability units: a shared
// BaseAgent providing identity, tool ownership and metrics bookkeeping, a
// generic intent pipeline (DomainAgent) driving the four student-facing
// agents from per-agent configuration tables, and the Coordinator that
// scores, selects, invokes and optionally re-delegates among them.
package agent
