package config

const (
	defaultConfigPath     = "~/.config/mkvnorm/config.toml"
	defaultLibraryDir     = "~/media"
	defaultStateDir       = "~/.local/share/mkvnorm"
	defaultLogDir         = "~/.local/share/mkvnorm/logs"
	defaultMKVMergeBinary = "mkvmerge"
	defaultRemuxTimeout   = 1800
	defaultOutputSuffix   = " (1)"
	defaultProbeBackend   = "mkvmerge"
	defaultBatchWorkers   = 1
	defaultBatchProfile   = "series"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultLogMaxSizeMB   = 20
	defaultLogMaxBackups  = 5
	defaultLogMaxAgeDays  = 30
	mkvmergeBinaryEnv     = "MKVNORM_MKVMERGE"
	maxBatchWorkers       = 64
)

var (
	defaultExtensions       = []string{".mkv"}
	defaultSidecarLanguages = []string{"spa", "jpn", "eng"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			StateDir:   defaultStateDir,
			LogDir:     defaultLogDir,
		},
		Remux: Remux{
			MKVMergeBinary:   defaultMKVMergeBinary,
			TimeoutSeconds:   defaultRemuxTimeout,
			OutputSuffix:     defaultOutputSuffix,
			StripAttachments: true,
			StripChapters:    true,
			StripGlobalTags:  true,
		},
		Probe: Probe{Backend: defaultProbeBackend},
		Batch: Batch{
			Workers:    defaultBatchWorkers,
			Profile:    defaultBatchProfile,
			Extensions: append([]string(nil), defaultExtensions...),
		},
		Sidecars: Sidecars{Languages: append([]string(nil), defaultSidecarLanguages...)},
		History:  History{Enabled: true},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}
