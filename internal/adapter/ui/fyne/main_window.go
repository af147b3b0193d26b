// Package fyne provides the application window and presentation logic.
package fyne

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
)

// MainWindow is the single application window: the spectrum surface on
// top, transport controls and the track catalog below, and a status
// line mirroring the lifecycle manager's mode.
type MainWindow struct {
	window    fyne.Window
	presenter *Presenter

	status  *widget.Label
	tracks  *fyne.Container
	surface fyne.CanvasObject
}

// NewMainWindow creates the main window around the spectrum surface.
func NewMainWindow(app fyne.App, surface fyne.CanvasObject) *MainWindow {
	w := &MainWindow{
		window:  app.NewWindow("HarmonyViz"),
		surface: surface,
		status:  widget.NewLabel("idle"),
	}

	micButton := widget.NewButton("Microphone", func() {
		if w.presenter != nil {
			w.presenter.UseMicrophone()
		}
	})
	stopButton := widget.NewButton("Stop", func() {
		if w.presenter != nil {
			w.presenter.StopAll()
		}
	})
	openButton := widget.NewButton("Open File…", func() {
		if w.presenter != nil {
			w.presenter.OpenFile()
		}
	})

	w.tracks = container.NewVBox()

	controls := container.NewHBox(micButton, stopButton, openButton)
	bottom := container.NewVBox(controls, w.tracks, w.status)

	w.window.SetContent(container.NewBorder(nil, bottom, nil, nil, surface))
	w.window.Resize(fyne.NewSize(800, 480))

	return w
}

// SetPresenter connects the presenter after construction.
func (w *MainWindow) SetPresenter(p *Presenter) {
	w.presenter = p
}

// SetCatalog rebuilds the track buttons. Must run on the UI thread.
func (w *MainWindow) SetCatalog(tracks []domain.Track) {
	w.tracks.RemoveAll()
	for _, track := range tracks {
		id := track.ID
		label := track.Title
		if track.Artist != "" {
			label = fmt.Sprintf("%s — %s", track.Artist, track.Title)
		}
		w.tracks.Add(widget.NewButton(label, func() {
			if w.presenter != nil {
				w.presenter.PlayTrack(id)
			}
		}))
	}
	w.tracks.Refresh()
}

// SetStatus updates the status line from a mode projection. Safe to call
// from any goroutine.
func (w *MainWindow) SetStatus(state domain.ModeState) {
	text := state.Mode.String()
	if state.ActiveTrack != nil {
		text = fmt.Sprintf("%s — %s", text, state.ActiveTrack.Title)
	}
	if state.LastError != "" {
		text = fmt.Sprintf("%s | %s", text, state.LastError)
	}

	fyne.Do(func() {
		w.status.SetText(text)
	})
}

// SetOnBeforeClose registers a hook that runs when the window closes.
func (w *MainWindow) SetOnBeforeClose(hook func()) {
	w.window.SetOnClosed(hook)
}

// ShowAndRun shows the window and blocks until it is closed.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window programmatically.
func (w *MainWindow) Close() {
	w.window.Close()
}
