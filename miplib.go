// Package miplib collects metadata about the MIPLIB 2017 benchmark
// instances. It scrapes the per-instance detail pages, normalizes them into
// Instance records, and exports the records as JSON, CSV and other formats.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package miplib
