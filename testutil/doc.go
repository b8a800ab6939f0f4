// Package testutil provides test infrastructure for fetchkit.
//
// RecordServer is an in-memory REST backend speaking the wire contract of
// the dataprovider package: list queries with filter, sort-field/sort-order
// and range-start/range-end parameters, an X-Total-Count header, and
// comma-separated ids for bulk reads, updates and deletes.
//
// Test components follow a small lifecycle with Reset, Snapshot and Restore
// for isolation between test cases:
//
//	func TestUsers(t *testing.T) {
//	    srv := testutil.NewRecordServer()
//	    testutil.T(t).Setup(srv)
//	    srv.Seed("users", testutil.Record{"id": "1", "name": "Ada"})
//	    // point a client at srv.URL()
//	}
package testutil
