// Package task holds the task model and its containers.
//
// A task is one of three kinds:
//
//   - T (todo): description only
//   - D (deadline): description plus a due date-time
//   - E (event): description plus a start and end date-time, start <= end
//
// All date-times use the fixed minute-precision layout "2006-01-02 15:04".
//
// # Data file records
//
// Each task has a canonical pipe-delimited record, one per line in the data
// file:
//
//	T | NOT_DONE | read book
//	D | DONE | submit report | 2024-03-01 23:59
//	E | NOT_DONE | trip | 2024-05-01 10:00 | 2024-05-02 10:00
//
// # Snapshots
//
// A snapshot is the JSON form of a whole list:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {"kind": "T", "status": "NOT_DONE", "description": "read book"}
//	  ]
//	}
//
// Snapshots validate against a JSON Schema file when one is available and
// fall back to minimal structural checks otherwise.
package task
