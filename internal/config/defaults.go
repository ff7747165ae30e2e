package config

const (
	defaultFormat      = "webp"
	defaultMaxWidth    = 2000
	defaultWebPQuality = 82
	defaultJPEGQuality = 85
	defaultConvertBin  = "magick"
	defaultOCRBin      = "tesseract"
	defaultOCRLanguage = "deu"
	defaultLanguage    = "de"
	defaultLicense     = "CC BY-SA 4.0"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"

	// StateDirName is the repo subdirectory holding state, manifest, temps,
	// and the run lock when paths.state_dir is not set explicitly.
	StateDirName = ".ingest"

	// ArchiveDirName is the source subdirectory ingested originals move into.
	ArchiveDirName = "_ingested"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Convert: Convert{
			Format:      defaultFormat,
			MaxWidth:    defaultMaxWidth,
			WebPQuality: defaultWebPQuality,
			JPEGQuality: defaultJPEGQuality,
			PNGOptimize: true,
			Binary:      defaultConvertBin,
		},
		OCR: OCR{
			Enabled:  true,
			Language: defaultOCRLanguage,
			Binary:   defaultOCRBin,
		},
		Metadata: Metadata{
			Language:       defaultLanguage,
			DefaultLicense: defaultLicense,
		},
		Publish: Publish{
			AutoCommit: true,
			AutoPush:   true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
