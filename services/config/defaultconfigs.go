package config

// Embedded configuration, keyed by board name. Each top-level key becomes
// the retained topic config/<key>.

const cfgEnvsense = `{
  "reporter": {
    "interval": 5
  }
}`

var embeddedConfigs = map[string][]byte{
	DefaultBoard: []byte(cfgEnvsense),
}
