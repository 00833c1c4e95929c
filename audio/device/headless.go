//go:build headless

package device

// OtoOutput is the headless stand-in for the oto backend: it accepts the
// same calls and produces no sound. Useful on CI machines without an audio
// subsystem.
type OtoOutput struct {
	src Source
}

// Open creates a no-op output.
func Open(sampleRate int) (*OtoOutput, error) {
	return &OtoOutput{}, nil
}

// Start records the source and returns.
func (o *OtoOutput) Start(src Source) error {
	o.src = src
	return nil
}

// Stop releases the source.
func (o *OtoOutput) Stop() error {
	o.src = nil
	return nil
}
