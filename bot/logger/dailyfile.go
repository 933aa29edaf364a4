package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const dayLayout = "2006-01-02"

// dailyFile is an io.Writer over dir/YYYY-MM-DD.log that switches files when
// the local date changes.
type dailyFile struct {
	mu   sync.Mutex
	dir  string
	now  func() time.Time
	day  string
	file *os.File
}

func openDailyFile(dir string, now func() time.Time) (*dailyFile, error) {
	if now == nil {
		now = time.Now
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	d := &dailyFile{dir: dir, now: now}
	if err := d.rotate(now().Local().Format(dayLayout)); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *dailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return 0, os.ErrClosed
	}
	if day := d.now().Local().Format(dayLayout); day != d.day {
		if err := d.rotate(day); err != nil {
			return 0, err
		}
	}
	return d.file.Write(p)
}

// rotate opens the file for day and closes the previous one. Callers hold mu
// except during construction.
func (d *dailyFile) rotate(day string) error {
	path := filepath.Join(d.dir, day+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if d.file != nil {
		_ = d.file.Close()
	}
	d.file = file
	d.day = day
	return nil
}

func (d *dailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}
