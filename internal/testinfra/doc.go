// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

// Package testinfra provides test infrastructure for integration testing with containers.
//
// This package uses testcontainers-go to start the services Reelhouse talks
// to in production, so store and cache tests run against real PostgreSQL
// and Redis instead of mocks.
//
// # PostgreSQL
//
//	func TestAccounts(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg)
//
//	    db, err := database.New(ctx, &config.DatabaseConfig{URL: pg.URL, MaxConns: 4})
//	    // ...
//	}
//
// # Redis
//
// NewRedisContainer returns a URL suitable for cache.NewRedisBackend.
//
// # CI Considerations
//
// Every file here carries the integration build tag. Run with
// go test -tags integration ./...; tests are skipped when Docker is
// unavailable.
package testinfra
