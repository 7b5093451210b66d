// Package data provides configuration data types for the coffeelab application.
package data

// Flags represents CLI command-line flags for the coffeelab application.
type Flags struct {
	APIURL      *string  // Back-office API base URL
	APITimeout  *string  // API request timeout, e.g. 10s
	RefreshRate *float32 // Refresh rate in seconds
	PageSize    *int     // Rows per page
	LogLevel    *string  // Log level (e.g., debug, info, warn, error)
	LogFile     *string  // Path to log file
	Headless    *bool    // Hide the header
	Command     *string  // Resource to show on startup
	ReadOnly    *bool    // Run in read-only mode
	Write       *bool    // Enable write operations
}

// UI represents user interface configuration settings.
type UI struct {
	EnableMouse bool   `yaml:"enableMouse"`
	Headless    bool   `yaml:"headless"`
	Logoless    bool   `yaml:"logoless"`
	Crumbsless  bool   `yaml:"crumbsless"`
	NoIcons     bool   `yaml:"noIcons"`
	Timezone    string `yaml:"timezone"`
}

// Logger represents logging configuration settings.
type Logger struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"maxSize"`
	MaxDays    int    `yaml:"maxDays"`
	MaxBackups int    `yaml:"maxBackups"`
}

// Logger configuration constants.
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultLogMaxSize    = 10
	DefaultLogMaxDays    = 7
	DefaultLogMaxBackups = 3
)

// Validate fills in missing logger settings.
func (l *Logger) Validate() {
	if l.Level == "" {
		l.Level = DefaultLogLevel
	}
	if l.Format == "" {
		l.Format = DefaultLogFormat
	}
	if l.MaxSize <= 0 {
		l.MaxSize = DefaultLogMaxSize
	}
	if l.MaxDays <= 0 {
		l.MaxDays = DefaultLogMaxDays
	}
	if l.MaxBackups <= 0 {
		l.MaxBackups = DefaultLogMaxBackups
	}
}

// NewFlags creates a new Flags instance with all pointer fields initialized.
// All pointers are allocated but their values are not set.
func NewFlags() *Flags {
	return &Flags{
		APIURL:      new(string),
		APITimeout:  new(string),
		RefreshRate: new(float32),
		PageSize:    new(int),
		LogLevel:    new(string),
		LogFile:     new(string),
		Headless:    new(bool),
		Command:     new(string),
		ReadOnly:    new(bool),
		Write:       new(bool),
	}
}
