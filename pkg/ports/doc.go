/*
Package ports defines the driven ports (interfaces) of animefmt.

These interfaces decouple the dialogue controller from external implementations,
allowing it to work with various catalog sources, session backends, and chat
transports.

# Key Interfaces

  - CatalogGateway: Paged search and single-item lookup against a remote catalog.
  - SessionStore: Persists the ephemeral per-user selection session.
  - Messenger: Delivers, edits, and attaches photos to chat messages.
  - CoverProbe: Optional reachability check for cover image URLs.
*/
package ports
