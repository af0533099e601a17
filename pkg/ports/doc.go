/*
Package ports defines the driven ports (interfaces) of the portrait engine.

These interfaces decouple the navigation core from external implementations,
allowing the engine to work with various session stores, question sources,
media locations and news feeds.

# Key Interfaces

  - SessionStore: Holds one Session per user id.
  - GraphLoader: Produces the immutable question Graph before the engine starts.
  - MediaResolver: Optionally maps a question id to a media reference.
  - FeedSummarizer: Supplies the pre-formatted feed block of the final result.
  - TextsLoader: Overrides the built-in texts catalogue.
*/
package ports
