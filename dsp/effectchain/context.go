package effectchain

// Context is the processing environment fixed by Prepare.
type Context struct {
	SampleRate   float64
	MaxBlockSize int
	Channels     int
}
