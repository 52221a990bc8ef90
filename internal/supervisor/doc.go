// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

/*
Package supervisor provides process supervision for Reelhouse using suture v4.

The long-running parts of the server are suture services arranged in a
two-layer tree:

	RootSupervisor ("reelhouse")
	├── DataSupervisor ("data-layer")
	│   └── CacheStatsService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff, and a failing layer
does not take the other one down. Canceling the context passed to Serve stops
every service; services that miss TreeConfig.ShutdownTimeout show up in
UnstoppedServiceReport.

Supervisor events are logged through sutureslog, normally into the zerolog
output via logging.NewSlogLogger:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCacheStatsService(rc, db, cfg.Cache.StatsInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))
	return tree.Serve(ctx)

Service implementations live in the services subpackage.
*/
package supervisor
