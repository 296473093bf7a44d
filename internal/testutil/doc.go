// Package testutil builds ledger snapshots for tests.
//
// A LedgerBuilder assembles a snapshot record by record or from a predefined
// Fixture, validates it the way the storage layer does, and can persist it
// into a temporary store:
//
//	snapshot := testutil.NewLedgerBuilder(t).
//		WithFixture(testutil.FixtureHousehold).
//		WithTransaction(model.Transaction{ID: "t9", AccountID: testutil.AccountWallet, ...}).
//		Build()
//
//	path := testutil.SetupLedger(t, storage.DriverJSON, snapshot)
package testutil
