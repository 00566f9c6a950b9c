package gui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const maxLogLines = 500

// ControlsPanel holds the filter entry, the run button and the progress bar.
type ControlsPanel struct {
	container   *fyne.Container
	paramsEntry *widget.Entry
	runButton   *widget.Button
	progressBar *widget.ProgressBar

	runHandler func(filter string)
}

func NewControlsPanel() *ControlsPanel {
	panel := &ControlsPanel{}
	panel.setupControls()
	return panel
}

func (cp *ControlsPanel) setupControls() {
	cp.paramsEntry = widget.NewEntry()
	cp.paramsEntry.SetPlaceHolder("(640x480, CV_16SC1, (1,0), BORDER_CONSTANT)")
	cp.paramsEntry.OnSubmitted = func(string) { cp.onRun() }

	cp.runButton = widget.NewButton("Run", cp.onRun)
	cp.runButton.Importance = widget.HighImportance

	cp.progressBar = widget.NewProgressBar()
	cp.progressBar.Hide()

	cp.container = container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Params"), cp.runButton, cp.paramsEntry),
		cp.progressBar,
	)
}

func (cp *ControlsPanel) GetContainer() *fyne.Container {
	return cp.container
}

func (cp *ControlsPanel) SetRunHandler(handler func(filter string)) {
	cp.runHandler = handler
}

func (cp *ControlsPanel) onRun() {
	if cp.runButton.Disabled() {
		return
	}
	if cp.runHandler != nil {
		cp.runHandler(strings.TrimSpace(cp.paramsEntry.Text))
	}
}

func (cp *ControlsPanel) SetEnabled(enabled bool) {
	if enabled {
		cp.runButton.Enable()
		cp.paramsEntry.Enable()
	} else {
		cp.runButton.Disable()
		cp.paramsEntry.Disable()
	}
}

func (cp *ControlsPanel) SetProgress(current, total int) {
	if total <= 0 || current >= total {
		cp.progressBar.Hide()
		return
	}
	cp.progressBar.Max = float64(total)
	cp.progressBar.SetValue(float64(current))
	cp.progressBar.Show()
}

// LogPanel is a scrolling, append-only text log.
type LogPanel struct {
	container fyne.CanvasObject
	label     *widget.Label
	status    *widget.Label
	lines     []string
}

func NewLogPanel() *LogPanel {
	label := widget.NewLabel("")
	label.Wrapping = fyne.TextWrapWord
	label.TextStyle = fyne.TextStyle{Monospace: true}

	status := widget.NewLabel("Ready")

	return &LogPanel{
		container: container.NewBorder(nil, status, nil, nil, container.NewVScroll(label)),
		label:     label,
		status:    status,
	}
}

func (lp *LogPanel) GetContainer() fyne.CanvasObject {
	return lp.container
}

func (lp *LogPanel) Append(line string) {
	lp.lines = append(lp.lines, line)
	if len(lp.lines) > maxLogLines {
		lp.lines = lp.lines[len(lp.lines)-maxLogLines:]
	}
	lp.label.SetText(strings.Join(lp.lines, "\n"))
}

func (lp *LogPanel) Lines() []string {
	return append([]string(nil), lp.lines...)
}

func (lp *LogPanel) SetStatus(status string) {
	lp.status.SetText(status)
}
