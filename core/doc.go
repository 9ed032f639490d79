// Package core provides the foundational domain types shared by the
// concierge packages. It defines:
//
//   - Messages (role-tagged, immutable conversation records)
//   - Conversations (append-only ordered message logs with structural
//     validation)
//   - Tool call requests / results linking model-issued invocations to their
//     outcomes
//   - Retrieval matches and the classified ModelResponse variants
//
// The package intentionally keeps implementation concerns (providers,
// retrieval backends, orchestration) out of scope, exposing small types that
// higher layers compose.
package core
