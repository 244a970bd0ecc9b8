package audiocapture

import "github.com/gordonklaus/portaudio"

// MicAccess answers microphone permission checks. The operating system shows
// its own consent prompt the first time an input stream opens; all this can
// verify up front is that an input device exists at all.
type MicAccess struct{}

func (MicAccess) RequestMicrophone() bool {
	dev, err := portaudio.DefaultInputDevice()
	return err == nil && dev != nil
}
