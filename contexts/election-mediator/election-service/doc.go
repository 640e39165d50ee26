// Package electionservice implements the election mediator's lifecycle module
// inside the election-mediator context.
//
// The module owns election orchestration (submit/get/find plus the
// open/close/publish state machine), ciphertext election context construction
// against registered manifests, and state-change event production through the
// outbox. It keeps business rules in application/domain layers and isolates
// infrastructure concerns behind ports and adapters.
package electionservice
