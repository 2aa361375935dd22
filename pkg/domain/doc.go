/*
Package domain contains the core data model for animefmt.

It defines the records flowing through the formatting pipeline and the selection
protocol. This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - FieldRecord: The normalized ten-field anime record consumed by the renderer.
  - SearchResultItem / MediaDetail: Entries returned by the remote catalog.
  - PageInfo / SearchPage: One page of a remote listing.
  - Session: The ephemeral per-user state of an in-progress paged search.
  - TextEvent / CallbackEvent / Message: Transport-neutral inbound and outbound units.
*/
package domain
