package cfg

type Cfg struct {
	// Audit target
	URL         string
	Source      string
	ProfilePath string
	Target      int
	MaxPages    int

	// Network behavior
	Timeout int

	// Output
	Output string
	DBPath string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
