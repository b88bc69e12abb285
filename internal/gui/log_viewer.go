package gui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const defaultMaxLogMessages = 200

// LogViewer shows the orchestrator's log lines, newest first. It is an
// io.Writer so a log.Logger can write to it directly.
type LogViewer struct {
	widget.BaseWidget

	container  *fyne.Container
	logEntry   *widget.Entry
	scrollView *container.Scroll

	mu          sync.Mutex
	messages    []string
	maxMessages int
	now         func() time.Time
}

// NewLogViewer creates a new log viewer widget
func NewLogViewer() *LogViewer {
	v := &LogViewer{
		maxMessages: defaultMaxLogMessages,
		now:         time.Now,
	}

	v.logEntry = widget.NewMultiLineEntry()
	v.logEntry.Disable()
	v.logEntry.Wrapping = fyne.TextWrapWord

	v.scrollView = container.NewScroll(v.logEntry)
	v.scrollView.SetMinSize(fyne.NewSize(0, 120))

	v.container = container.NewStack(v.scrollView)

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *LogViewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

// Write implements io.Writer. Every non-empty line becomes one message.
func (v *LogViewer) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			v.AddMessage(line)
		}
	}
	return len(p), nil
}

// AddMessage adds a timestamped message to the top of the log
func (v *LogViewer) AddMessage(message string) {
	v.mu.Lock()
	fullMessage := fmt.Sprintf("[%s] %s", v.now().Format("15:04:05"), message)
	v.messages = append([]string{fullMessage}, v.messages...)
	if len(v.messages) > v.maxMessages {
		v.messages = v.messages[:v.maxMessages]
	}
	text := strings.Join(v.messages, "\n")
	v.mu.Unlock()

	fyne.Do(func() {
		v.logEntry.SetText(text)
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}

// Messages returns a copy of the current messages, newest first
func (v *LogViewer) Messages() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.messages...)
}

// Clear removes all messages
func (v *LogViewer) Clear() {
	v.mu.Lock()
	v.messages = nil
	v.mu.Unlock()

	fyne.Do(func() {
		v.logEntry.SetText("")
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}
