package displayer

import (
	"fmt"
	"io"

	"voiture/internal/models"
	"voiture/pkg/log"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// Displayer handles the TUI around a single vehicle.
// Every status line the vehicle prints lands in the history view.
type Displayer struct {
	app     *tview.Application
	vehicle *models.Vehicle

	// UI elements cached for updates
	nameText    *tview.TextView
	speedText   *tview.TextView
	helpText    *tview.TextView
	historyText *tview.TextView
	root        *tview.Flex
}

// New builds the dashboard and redirects the vehicle output to its history
// view and to any extra writers.
func New(vehicle *models.Vehicle, extra ...io.Writer) *Displayer {
	d := &Displayer{
		app:     tview.NewApplication(),
		vehicle: vehicle,
	}
	d.build()

	outputs := append([]io.Writer{d.historyText}, extra...)
	vehicle.SetOutput(io.MultiWriter(outputs...))

	d.app.SetRoot(d.root, true)
	d.app.SetInputCapture(d.handleKey)
	d.updateValues()
	return d
}

// Run blocks until the user quits.
func (d *Displayer) Run() error {
	log.Debug("Starting dashboard", zap.String("vehicle", d.vehicle.Name))
	if err := d.app.Run(); err != nil {
		return fmt.Errorf("dashboard stopped: %w", err)
	}
	return nil
}

func (d *Displayer) Shutdown() {
	d.app.Stop()
}

func (d *Displayer) build() {
	title := tview.NewTextView().SetTextAlign(tview.AlignCenter).SetText("voiture - accelerate and watch")
	d.nameText = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true)
	d.helpText = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetText("[a - Accelerate] [q - Quit]")

	headerFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	headerFlex.AddItem(title, 1, 0, false)
	headerFlex.AddItem(d.nameText, 1, 0, false)
	headerFlex.AddItem(d.helpText, 1, 0, false)

	d.speedText = tview.NewTextView().SetDynamicColors(true)
	d.historyText = tview.NewTextView().SetScrollable(true)
	d.historyText.SetBorder(true).SetTitle("History")

	d.root = tview.NewFlex().SetDirection(tview.FlexRow)
	d.root.AddItem(headerFlex, 3, 0, false)
	d.root.AddItem(d.speedText, 1, 0, false)
	d.root.AddItem(d.historyText, 0, 1, true)
}

func (d *Displayer) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyUp {
		d.accelerate()
		return nil
	}
	switch event.Rune() {
	case 'a', 'A':
		d.accelerate()
		return nil
	case 'q', 'Q':
		d.Shutdown()
		return nil
	}
	return event
}

func (d *Displayer) accelerate() {
	d.vehicle.Accelerate()
	d.historyText.ScrollToEnd()
	d.updateValues()
}

func (d *Displayer) updateValues() {
	d.nameText.SetText(fmt.Sprintf("Vehicle: [yellow]%s[white]", tview.Escape(d.vehicle.Name)))

	color := "green"
	if d.vehicle.Speed < 0 {
		color = "red"
	}
	d.speedText.SetText(fmt.Sprintf("Speed: [%s]%d[white] %s", color, d.vehicle.Speed, models.Unit))
}
