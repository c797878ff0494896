package main

import (
	"image"
	"os"
	"path/filepath"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
)

// display shows the chart and blocks until the window is closed. Tests replace it.
var display = showWindow

// graphicalSession reports whether a window can be opened. Tests replace it.
var graphicalSession = func() bool {
	switch runtime.GOOS {
	case "darwin", "windows":
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func windowTitle(input string) string {
	return "Strategy Chart - " + filepath.Base(input)
}

func showWindow(title string, img image.Image) {
	a := app.NewWithID("com.fkuefler.strategychart")
	w := a.NewWindow(title)

	b := img.Bounds()
	size := fyne.NewSize(float32(b.Dx()), float32(b.Dy()))
	ci := canvas.NewImageFromImage(img)
	ci.FillMode = canvas.ImageFillContain
	ci.ScaleMode = canvas.ImageScaleSmooth
	ci.SetMinSize(fyne.NewSize(size.Width/2, size.Height/2))

	w.SetContent(ci)
	w.Resize(size)
	w.ShowAndRun()
}
