// Package storage is the durable local key/value store shared by the session
// and catalog stores: a single SQLite table standing in for browser
// localStorage, plus JSON helpers that detect corrupt values.
//
// Typical Usage
//
//	db, _ := storage.InitDatabase(ctx, "deployhq.db")
//	repo := storage.NewSQLiteRepository(db)
//	_ = storage.SaveJSON(ctx, repo, key, v)
//	found, err := storage.LoadJSON(ctx, repo, key, &v)
//
// Values are opaque bytes to the repository; only LoadJSON/SaveJSON know
// they are JSON.
package storage
