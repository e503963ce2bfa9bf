package driven

// ConfigStore is a flat key/value view over persisted settings.
// Keys are dotted paths such as "validation.strict_mode"; the file
// adapter maps them onto nested TOML tables.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	// Typed getters return the zero value when the key is unset or
	// holds another type. GetFloat also accepts integers.
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set stores value and persists it.
	Set(key string, value any) error

	// Delete removes key. Missing keys are not an error.
	Delete(key string) error

	// Keys lists the set keys, sorted.
	Keys() []string

	Save() error
	Load() error

	// Path is where the settings live; in-memory stores return ":memory:".
	Path() string
}
