// Package config loads the converter configuration from YAML and environment.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Transcode TranscodeConfig `yaml:"transcode"`
	Align     AlignConfig     `yaml:"align"`
	Store     StoreConfig     `yaml:"store"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LASLA_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LASLA_LOG_FORMAT" env-default:"text"`
}

// TranscodeConfig holds corpus conversion settings.
type TranscodeConfig struct {
	Variant          string `yaml:"variant"           env:"LASLA_VARIANT"           env-default:"compact"`
	Workers          int    `yaml:"workers"           env:"LASLA_WORKERS"           env-default:"1"`
	RawMorph         bool   `yaml:"raw_morph"         env:"LASLA_RAW_MORPH"         env-default:"false"`
	NoDisambiguation bool   `yaml:"no_disambiguation" env:"LASLA_NO_DISAMBIGUATION" env-default:"false"`
	Lowercase        bool   `yaml:"lowercase"         env:"LASLA_LOWERCASE"         env-default:"false"`
}

// AlignConfig holds lemma alignment settings.
type AlignConfig struct {
	Dictionary     string           `yaml:"dictionary"      env:"LASLA_DICTIONARY"`
	FlatDictionary string           `yaml:"flat_dictionary" env:"LASLA_FLAT_DICTIONARY"`
	Lemmatizer     LemmatizerConfig `yaml:"lemmatizer"`
}

// LemmatizerConfig selects the optional external lemmatizer.
// Provider is "" or "none" (disabled), "table" or "http".
type LemmatizerConfig struct {
	Provider string        `yaml:"provider" env:"LASLA_LEMMATIZER"         env-default:""`
	Table    string        `yaml:"table"    env:"LASLA_LEMMATIZER_TABLE"`
	URL      string        `yaml:"url"      env:"LASLA_LEMMATIZER_URL"     env-default:"http://localhost:8080"`
	Timeout  time.Duration `yaml:"timeout"  env:"LASLA_LEMMATIZER_TIMEOUT" env-default:"10s"`
}

// StoreConfig holds the run store location. An empty path means the default.
type StoreConfig struct {
	Path string `yaml:"path" env:"LASLA_DB"`
}
