package credentials

import "github.com/atotto/clipboard"

// SystemClipboard пишет в буфер обмена операционной системы.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
