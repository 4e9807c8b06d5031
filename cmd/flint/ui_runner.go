package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"flint/internal/checker"
	"flint/internal/driver"
	"flint/internal/ui"
)

type checkOutcome struct {
	results []checker.FileResult
	err     error
}

func runCheckWithUI(ctx context.Context, title string, reg *checker.Registry, opts driver.Options, files []string) ([]checker.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.NewManager(reg, opts).Run(ctx, files)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// UI мог выйти раньше (Ctrl-C): останавливаем прогон и дочитываем события,
	// чтобы воркеры не встали на отправке
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
