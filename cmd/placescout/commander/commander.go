package commander

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/placescout/placescout/cmd/placescout/build"
)

type Globals struct {
	LogLevel  string `default:"info"    enum:"debug,info,warn,error" help:"Sets the minimum severity level for log messages"` // nolint:lll
	LogOutput string `default:"console" enum:"console,stdout,json"   help:"Specifies the format for log output"`

	RedisURL string `default:"" help:"Defines the Redis URL connection; in-memory storage is used when empty"`

	GamesBaseURL      string  `default:"https://games.roblox.com"      help:"Sets the base URL of the games API"`
	ThumbnailsBaseURL string  `default:"https://thumbnails.roblox.com" help:"Sets the base URL of the thumbnails API"`
	UsersBaseURL      string  `default:"https://users.roblox.com"      help:"Sets the base URL of the users API"`
	JoinBaseURL       string  `default:"https://gamejoin.roblox.com"   help:"Sets the base URL of the game join API"`
	ViewerID          int64   `default:"0"                             help:"Sets the account id reported to the platform on listing requests"`   // nolint:lll
	PlatformRPS       float64 `default:"8"                             help:"Limits the rate of outbound platform API requests, per second"`      // nolint:lll
	PlatformBurst     int     `default:"4"                             help:"Allows short bursts of outbound platform API requests over the cap"` // nolint:lll

	ScanPageLimit   int    `default:"100"   help:"Sets how many servers one listing page requests"`
	FingerprintSize string `default:"48x48" help:"Sets the thumbnail size used for player fingerprint matching"`
	TeleportPlaceID int64  `default:"0"     help:"Probes region resolutions against this place id instead of the browsed one"` // nolint:lll

	GeoProvider string `default:"web" enum:"web,maxmind"       help:"Selects the ip geolocation backend"`
	GeoBaseURL  string `default:"http://ip-api.com"            help:"Sets the base URL of the web geolocation service"`
	GeoDBPath   string `default:"GeoLite2-City.mmdb"           help:"Sets the path to the maxmind city database file"`

	ResolverConcurrency int `default:"10" help:"Specifies the maximum number of region resolutions that can run simultaneously"` // nolint:lll
	ResolverQueueSize   int `default:"50" help:"Limits how many region resolutions may wait for a free worker"`

	ExporterHTTPListenAddress   string        `default:":9000" help:"Sets the address where the Prometheus exporter server listens for requests"`            // nolint:lll
	ExporterHTTPReadTimeout     time.Duration `default:"5s"    help:"Sets the maximum duration to read the request body before timing out"`                  // nolint:lll
	ExporterHTTPWriteTimeout    time.Duration `default:"5s"    help:"Sets the maximum duration to write a response before timing out"`                       // nolint:lll
	ExporterHTTPShutdownTimeout time.Duration `default:"10s"   help:"The amount of time the server will wait gracefully closing connections before exiting"` // nolint:lll
}

type VersionCmd struct{}

func (v *VersionCmd) Run() error {
	version := fmt.Sprintf("Version: %s (%s) built at %s", build.Version, build.Commit, build.Time)
	fmt.Println(version) // nolint: forbidigo
	os.Exit(0)
	return nil
}

type RunCmd struct {
	kong.Plugins
}

type CLI struct {
	Globals

	Version VersionCmd `cmd:"" help:"Display the app version and exit"`
	Run     RunCmd     `cmd:""`
}
