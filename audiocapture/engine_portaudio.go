package audiocapture

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	// levelInterval is the loudness emission cadence.
	levelInterval = 50 * time.Millisecond
	// levelWindow is the time-domain window size for one loudness sample.
	levelWindow = 2048
	// framesPerBuffer is the portaudio callback granularity.
	framesPerBuffer = 1024
)

// MicEngine captures microphone audio through portaudio. It owns the stream
// on its own goroutines and speaks the Engine handshake: Ready after the
// stream starts, Level ticks every 50 ms, one WAV per Stop, Error on any
// portaudio failure.
type MicEngine struct {
	events chan Event

	mu        sync.Mutex
	stream    *portaudio.Stream
	recording bool
	deviceID  string

	sampleRate int
	chunks     [][]float32
	recent     []float32 // rolling window of the newest levelWindow samples

	stopTicker chan struct{}
}

// NewMicEngine initializes portaudio and returns an idle engine.
func NewMicEngine() (*MicEngine, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	return &MicEngine{
		events: make(chan Event, 64),
		recent: make([]float32, 0, levelWindow),
	}, nil
}

// Events implements Engine.
func (e *MicEngine) Events() <-chan Event { return e.events }

// SetDevice implements Engine.
func (e *MicEngine) SetDevice(deviceID string) {
	e.mu.Lock()
	e.deviceID = deviceID
	e.mu.Unlock()
}

// Start implements Engine. The microphone opens at the device's native
// sample rate; failures surface as an Error event so the coordinator's
// normal error path runs.
func (e *MicEngine) Start(deviceID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.recording {
		return ErrAlreadyStarted
	}
	if deviceID != "" {
		e.deviceID = deviceID
	}

	device, err := e.inputDevice()
	if err != nil {
		e.emitError(fmt.Sprintf("Microphone unavailable: %v", err))
		return nil
	}

	e.sampleRate = int(device.DefaultSampleRate)
	e.chunks = nil
	e.recent = e.recent[:0]

	params := portaudio.LowLatencyParameters(device, nil)
	params.Input.Channels = 1
	params.FramesPerBuffer = framesPerBuffer

	stream, err := portaudio.OpenStream(params, e.onAudio)
	if err != nil {
		e.emitError(fmt.Sprintf("Microphone unavailable: %v", err))
		return nil
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		e.emitError(fmt.Sprintf("Microphone unavailable: %v", err))
		return nil
	}

	e.stream = stream
	e.recording = true
	e.stopTicker = make(chan struct{})
	go e.levelLoop(e.stopTicker)

	e.emit(Event{Kind: EventReady})
	return nil
}

// Stop implements Engine: tears the stream down and emits the encoded WAV.
// Stopping while idle emits an empty payload so a pending coordinator stop
// still settles.
func (e *MicEngine) Stop() {
	samples, rate := e.teardown()
	if samples == nil {
		e.emit(Event{Kind: EventWAV})
		return
	}
	e.emit(Event{Kind: EventWAV, WAV: EncodeWAV(samples, rate)})
}

// Cancel implements Engine: tears the stream down and discards the audio.
func (e *MicEngine) Cancel() {
	e.teardown()
}

// Close releases portaudio. The engine is unusable afterwards.
func (e *MicEngine) Close() error {
	e.Cancel()
	return portaudio.Terminate()
}

// onAudio is the portaudio input callback.
func (e *MicEngine) onAudio(in []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.recording {
		return
	}

	chunk := make([]float32, len(in))
	copy(chunk, in)
	e.chunks = append(e.chunks, chunk)

	// Keep only the newest levelWindow samples for loudness.
	e.recent = append(e.recent, chunk...)
	if n := len(e.recent); n > levelWindow {
		e.recent = append(e.recent[:0], e.recent[n-levelWindow:]...)
	}
}

func (e *MicEngine) levelLoop(stop chan struct{}) {
	ticker := time.NewTicker(levelInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.mu.Lock()
			window := make([]float32, len(e.recent))
			copy(window, e.recent)
			e.mu.Unlock()

			// Levels are droppable: skip when the channel is full rather
			// than stall the capture path.
			select {
			case e.events <- Event{Kind: EventLevel, Level: RMS(window)}:
			default:
			}
		}
	}
}

// teardown stops the stream and returns the accumulated samples, or nil if
// nothing was recording.
func (e *MicEngine) teardown() ([]float32, int) {
	e.mu.Lock()
	if !e.recording {
		e.mu.Unlock()
		return nil, 0
	}
	e.recording = false
	close(e.stopTicker)
	stream := e.stream
	e.stream = nil
	e.mu.Unlock()

	// Stream.Stop waits for the audio callback to drain; it must run
	// without holding the mutex the callback takes.
	if err := stream.Stop(); err != nil {
		e.emitError(fmt.Sprintf("Stop recording: %v", err))
	}
	stream.Close()

	e.mu.Lock()
	defer e.mu.Unlock()

	var total int
	for _, c := range e.chunks {
		total += len(c)
	}
	merged := make([]float32, 0, total)
	for _, c := range e.chunks {
		merged = append(merged, c...)
	}
	e.chunks = nil

	return merged, e.sampleRate
}

// inputDevice resolves the configured device by name substring, falling back
// to the system default input.
func (e *MicEngine) inputDevice() (*portaudio.DeviceInfo, error) {
	if e.deviceID != "" {
		devices, err := portaudio.Devices()
		if err != nil {
			return nil, fmt.Errorf("list devices: %w", err)
		}
		for _, d := range devices {
			if d.MaxInputChannels > 0 && strings.Contains(d.Name, e.deviceID) {
				return d, nil
			}
		}
	}

	device, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, fmt.Errorf("default input device: %w", err)
	}
	return device, nil
}

func (e *MicEngine) emit(ev Event) {
	e.events <- ev
}

func (e *MicEngine) emitError(msg string) {
	select {
	case e.events <- Event{Kind: EventError, Err: msg}:
	default:
	}
}
