package internal

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
)

// UIManager handles user-facing output: progress bars, verbose and status text.
type UIManager interface {
	NewProgressBar(total int, description string) ProgressBar

	Verbose(format string, args ...any)

	Printf(format string, args ...any)
	Println(args ...any)
}

// ProgressBar interface abstracts progress bar operations
type ProgressBar interface {
	Set(current int)
	Add(delta int)
	Describe(description string)
	Finish()
}

// StandardUIManager handles normal UI operations
type StandardUIManager struct {
	verbose bool
	quiet   bool
}

func NewUIManager(verbose, quiet bool) UIManager {
	return &StandardUIManager{
		verbose: verbose,
		quiet:   quiet,
	}
}

func (ui *StandardUIManager) NewProgressBar(total int, description string) ProgressBar {
	if ui.quiet {
		return &SilentProgressBar{bar: progressbar.DefaultSilent(int64(total))}
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	return &VisibleProgressBar{bar: bar}
}

func (ui *StandardUIManager) Verbose(format string, args ...any) {
	if ui.verbose {
		fmt.Printf(format, args...)
	}
}

func (ui *StandardUIManager) Printf(format string, args ...any) {
	if !ui.quiet {
		fmt.Printf(format, args...)
	}
}

func (ui *StandardUIManager) Println(args ...any) {
	if !ui.quiet {
		fmt.Println(args...)
	}
}

// VisibleProgressBar wraps the actual progress bar
type VisibleProgressBar struct {
	bar *progressbar.ProgressBar
}

func (v *VisibleProgressBar) Set(current int) {
	v.bar.Set(current)
}

func (v *VisibleProgressBar) Add(delta int) {
	v.bar.Add(delta)
}

func (v *VisibleProgressBar) Describe(description string) {
	v.bar.Describe(description)
}

func (v *VisibleProgressBar) Finish() {
	v.bar.Finish()
}

// SilentProgressBar implements a silent progress bar
type SilentProgressBar struct {
	bar *progressbar.ProgressBar
}

func (s *SilentProgressBar) Set(current int) {
	s.bar.Set(current)
}

func (s *SilentProgressBar) Add(delta int) {
	s.bar.Add(delta)
}

func (s *SilentProgressBar) Describe(description string) {}

func (s *SilentProgressBar) Finish() {
	s.bar.Finish()
}
