package transcriber

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
)

func loadAudio(path string) (Audio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Audio{}, err
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return Audio{}, fmt.Errorf("not a valid wav file")
	}

	var dur time.Duration
	if d, err := dec.Duration(); err == nil {
		dur = d
	}

	return Audio{
		Path:       path,
		Data:       data,
		SampleRate: int(dec.SampleRate),
		Duration:   dur,
	}, nil
}
