// Package testdb provides helpers for PostgreSQL integration tests.
//
// Tests skip themselves when no database URL is configured. Each test gets a
// migrated schema and runs its statements inside a transaction that is rolled
// back afterwards, so tests can run in parallel on one database:
//
//	func TestTaskStore(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewPostgresTaskStore(db, nil).WithTx(tx)
//	        // ...
//	    })
//	}
//
// Environment variables, in lookup order: DATABASE_URL, TASKHELPER_TEST_DB_URL.
package testdb
