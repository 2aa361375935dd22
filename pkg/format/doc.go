/*
Package format implements the metadata extraction and presentation pipeline.

Both ingestion paths produce a domain.FieldRecord first: Parse reads the labeled
structured block users type by hand, FromMedia adapts a remote catalog entry. A
single Renderer then turns any record into the channel's fixed HTML layout, using a
Compactor to shorten the synopsis.
*/
package format
