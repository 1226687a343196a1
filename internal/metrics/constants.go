package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameLootGenerated    = "loot_generated_total"
	MetricNameAffixesRolled    = "affixes_rolled_total"
	MetricNameMapsParsed       = "maps_parsed_total"
	MetricNameMapsPopulated    = "maps_populated_total"
	MetricNameMapParseDuration = "map_parse_duration_seconds"
	MetricNameMapCacheHits     = "map_cache_hits_total"
	MetricNameMapCacheMisses   = "map_cache_misses_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextLootGenerated    = "Total number of equipment items generated"
	HelpTextAffixesRolled    = "Total number of affixes rolled onto items"
	HelpTextMapsParsed       = "Total number of map images parsed"
	HelpTextMapsPopulated    = "Total number of maps populated with enemies and props"
	HelpTextMapParseDuration = "Map image parse latency in seconds"
	HelpTextMapCacheHits     = "Total number of map cache hits"
	HelpTextMapCacheMisses   = "Total number of map cache misses"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelRarity = "rarity"
	LabelSlot   = "slot"
	LabelKind   = "kind"
	LabelResult = "result"
)

// HTTPLatencyBuckets are the histogram buckets for HTTP request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// MapParseLatencyBuckets are the histogram buckets for map parse latency.
// Parses are CPU-bound over the tile grid, so buckets skew larger than HTTP.
var MapParseLatencyBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
