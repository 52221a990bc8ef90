// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

/*
Package services provides suture.Service wrappers for Reelhouse components.

Each wrapper translates a component's own lifecycle into suture's
context-aware Serve method and implements fmt.Stringer so supervisor events
name the service.

HTTPServerService runs an *http.Server. ListenAndServe runs in a goroutine;
when the context is canceled the server is shut down with a bounded timeout
so in-flight requests can drain.

CacheStatsService samples the response cache and the database pool on a
ticker, publishing the results as Prometheus gauges. When the cache lives in
BadgerDB it also runs value log garbage collection on each tick.
*/
package services
