package config

// Default configuration values
const (
	DefaultServiceName = "delveforge"
	DefaultPort        = 8080

	DefaultBaseItemsPath = "configs/base_items.json"
	DefaultAffixesPath   = "configs/affixes.json"

	DefaultMapCacheSize    = 64
	DefaultPopulateQueue   = 32
	DefaultPopulateWorkers = 2
)
