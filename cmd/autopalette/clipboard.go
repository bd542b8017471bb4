package main

import (
	"bytes"
	"fmt"
	"image"
	"os/exec"
	"runtime"
)

// readClipboardImage reads a raster image from the system clipboard.
// No pack example ships a clipboard dependency, so this shells out to
// the platform's clipboard utility instead of vendoring one (see
// SPEC_FULL.md §4.11).
func readClipboardImage() (pixels []byte, width, height int, err error) {
	data, err := clipboardPNGBytes()
	if err != nil {
		return nil, 0, 0, err
	}
	if len(data) == 0 {
		return nil, 0, 0, fmt.Errorf("clipboard is empty or does not contain image data")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decoding clipboard image: %w", err)
	}
	return rgbaBytesFromImage(img)
}

func clipboardPNGBytes() ([]byte, error) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pngpaste", "-")
	case "windows":
		cmd = exec.Command("powershell", "-command",
			"[Windows.Clipboard]::GetImage().Save([Console]::OpenStandardOutput(), [Drawing.Imaging.ImageFormat]::Png)")
	default:
		cmd = exec.Command("xclip", "-selection", "clipboard", "-t", "image/png", "-o")
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s: %w", cmd.Path, err)
	}
	return out.Bytes(), nil
}
