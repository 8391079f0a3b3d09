// Package core defines the shared types and contracts of the campusmesh
// dispatch engine: messages, conversational context, agent responses, the
// Agent interface, per-agent metrics and the error taxonomy. Concrete agents,
// stores and transports live in their own packages and depend only on core.
package core
