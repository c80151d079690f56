package ui

// Config contains window/input/audio related settings.
type Config struct {
	Title         string // window title
	Scale         int    // integer upscaling factor
	AudioBufferMs int    // desired buzzer buffer in ms (approx)
	ProgramsDir   string // directory to browse for .prog/.txt program files
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "jr100"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
	if c.AudioBufferMs <= 0 {
		c.AudioBufferMs = 60
	}
	if c.ProgramsDir == "" {
		c.ProgramsDir = "programs"
	}
}
