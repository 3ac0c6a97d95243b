// Package dialect models per-database SQL feature capability.
//
// A capability Set answers two pure questions: does this database support a
// named capability at its configured version (Supports), and would it at
// some other version (SupportsAt). Sets are built once per configured
// database from a table of version gates and are immutable afterwards, so
// they are safely shared across any number of concurrent translations.
//
// # Capability tables are data
//
// The minimum-version thresholds behind the gates are empirical. They ship
// as defaults generated from capabilities.yaml (see cmd/capgen) and can be
// overridden at runtime with a YAML file:
//
//	dialects:
//	  postgres:
//	    capabilities:
//	      fetch-clause-ties:
//	        min-version: "13"
//
// A Registry holds the sets for every configured database and can watch the
// override file for changes, swapping in freshly built immutable sets when
// the file is rewritten.
//
// # Unknown capabilities
//
// Querying a capability name that does not exist panics. A typo'd
// capability constant is a programming error in the calling code, and a
// soft "false" would silently disable dialect features.
package dialect
