package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/trace"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/webriots/taskexec"
)

const (
	vectorTimer    taskexec.Vector = 32
	vectorKeyboard taskexec.Vector = 33

	heartbeatTicks = 100
)

var (
	runConfig   string
	runDuration time.Duration
	runTrace    string
)

func init() {
	runCmd.Flags().StringVar(&runConfig, "config", "", "YAML config file (defaults when empty)")
	runCmd.Flags().DurationVar(&runDuration, "duration", 0, "stop after this long (0 runs until interrupted)")
	runCmd.Flags().StringVar(&runTrace, "trace", "", "write a runtime trace to this file")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Boot the executor and echo keypresses read from stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := taskexec.LoadConfig(runConfig)
		if err != nil {
			return err
		}

		if runTrace != "" {
			f, err := os.Create(runTrace)
			if err != nil {
				return fmt.Errorf("create trace: %w", err)
			}
			defer f.Close()
			if err := trace.Start(f); err != nil {
				return fmt.Errorf("start trace: %w", err)
			}
			defer trace.Stop()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if runDuration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, runDuration)
			defer cancel()
		}

		return boot(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// boot wires the emulated core, the event sources and the initial
// tasks, then runs the executor until ctx is done.
func boot(ctx context.Context, cfg taskexec.Config, in io.Reader, out io.Writer) error {
	info := color.New(color.FgCyan)
	warn := color.New(color.FgYellow)
	key := color.New(color.FgGreen, color.Bold)

	core := taskexec.NewCore()
	clock := taskexec.NewTickClock(core, vectorTimer)
	timers := taskexec.NewTimers(clock)
	keys := taskexec.NewStream[byte](cfg.StreamCapacity)

	// stands in for the keyboard controller: each byte read from in is
	// delivered through the keyboard vector
	go func() {
		r := bufio.NewReader(in)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			core.Deliver(func() {
				if err := keys.Push(b); err != nil {
					warn.Fprintf(out, "WARNING: %v; dropping keypress\n", err)
				}
			})
		}
	}()

	exec := taskexec.NewExecutorConfig(core, cfg)

	exec.Spawn(taskexec.Go(ctx, func(context.Context, *taskexec.Coroutine) {
		info.Fprintf(out, "async number: %d\n", asyncNumber())
	}), taskexec.High)

	exec.Spawn(taskexec.Go(ctx, func(_ context.Context, co *taskexec.Coroutine) {
		for {
			b := keys.Recv(co)
			if b == '\n' {
				fmt.Fprintln(out)
				continue
			}
			key.Fprintf(out, "%c", b)
		}
	}), taskexec.High)

	exec.Spawn(timers.Task(ctx), taskexec.Low)

	exec.Spawn(taskexec.Go(ctx, func(_ context.Context, co *taskexec.Coroutine) {
		for {
			co.Await(timers.Sleep(heartbeatTicks))
			info.Fprintf(out, "heartbeat: tick %d\n", clock.Count())
		}
	}), taskexec.Low)

	clock.Start(time.Duration(cfg.TickMS) * time.Millisecond)
	defer clock.Stop()

	err := exec.Run(ctx)

	stats := exec.Stats()
	info.Fprintf(out, "spawned=%d completed=%d polls=%d stale=%d halts=%d\n",
		stats.Spawned, stats.Completed, stats.Polls, stats.Stale, stats.Halts)

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func asyncNumber() int {
	return 42
}
