// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

/*
Package metrics provides Prometheus metrics for the Reelhouse API.

All collectors are registered on the default registry through promauto and are
exposed at GET /metrics by promhttp.

# Available Metrics

HTTP Metrics:
  - reelhouse_api_requests_total{method,route,status}
  - reelhouse_api_request_duration_seconds{method,route}
  - reelhouse_api_active_requests
  - reelhouse_api_rate_limit_hits_total{limiter}

Response Cache Metrics:
  - reelhouse_cache_hits_total{prefix}, reelhouse_cache_misses_total{prefix}
  - reelhouse_cache_errors_total{backend,op}
  - reelhouse_cache_invalidations_total{pattern}
  - reelhouse_cache_keys{namespace} (sampled by the cache stats service)

Database Metrics:
  - reelhouse_db_query_duration_seconds{operation,table}
  - reelhouse_db_query_errors_total{operation,table,error_type}
  - reelhouse_db_pool_connections{state}

Circuit Breaker Metrics:
  - reelhouse_circuit_breaker_state{name}
  - reelhouse_circuit_breaker_requests_total{name,result}
  - reelhouse_circuit_breaker_state_transitions_total{name,from_state,to_state}

The route label is the chi route pattern (for example /api/series/{id}), never
the raw path, so cardinality stays bounded.
*/
package metrics
