// Package offsync keeps a set of remote web pages available offline.
// It fetches each page, extracts its meaningful content into a standalone
// HTML document, stores it on disk, and maintains a URL index that answers
// availability and lookup queries without network access.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, fs/).
package offsync
