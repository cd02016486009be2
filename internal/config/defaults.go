package config

const (
	defaultChartBaseURL         = "https://www.billboard.com/charts/billboard-200"
	defaultChartTimeoutSeconds  = 30
	defaultChartUserAgent       = "Mozilla/5.0 (compatible; chartmeta/0.1)"
	defaultMusicBrainzBaseURL   = "https://musicbrainz.org/ws/2"
	defaultMusicBrainzUserAgent = "chartmeta/0.1"
	defaultMusicBrainzTimeout   = 10
	defaultTitleThreshold       = 0.5
	defaultArtistThreshold      = 0.3
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	maxChartCount               = 200
	defaultConfigRelPath        = "~/.config/chartmeta/config.toml"
	projectConfigName           = "chartmeta.toml"
	dotEnvFile                  = ".env"
	envMusicBrainzContact       = "CHARTMETA_MB_CONTACT"
	envLogLevel                 = "CHARTMETA_LOG_LEVEL"
	envChartURL                 = "CHARTMETA_CHART_URL"
)

var defaultMusicBrainzIncludes = []string{"discids", "recordings"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Chart: Chart{
			BaseURL:        defaultChartBaseURL,
			TimeoutSeconds: defaultChartTimeoutSeconds,
			UserAgent:      defaultChartUserAgent,
		},
		MusicBrainz: MusicBrainz{
			Enabled:        true,
			BaseURL:        defaultMusicBrainzBaseURL,
			UserAgent:      defaultMusicBrainzUserAgent,
			TimeoutSeconds: defaultMusicBrainzTimeout,
			Includes:       append([]string(nil), defaultMusicBrainzIncludes...),
		},
		Matching: Matching{
			TitleThreshold:  defaultTitleThreshold,
			ArtistThreshold: defaultArtistThreshold,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
