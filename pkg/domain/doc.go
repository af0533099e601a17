/*
Package domain contains the core domain models of the portrait questionnaire engine.

It defines the immutable question graph, the per-user session, the events the
engine accepts and the views it produces. This package is kept pure and free of
I/O so that the navigation rules can be tested without any adapter.

# Key Entities

  - Graph: Immutable, concurrency-safe index of questions by (branch, question id).
  - Question / Option: A prompt and its ordered answer choices with side effects.
  - Session: Mutable per-user walk state (branch, current question, history stack).
  - Event: What the user did (start, choose branch, answer, back, restart, skip).
  - View: What the host should render (welcome, question, interstitial, result).
*/
package domain
