package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/pkg/emulator"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/trace/web"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load (.gb, .gz, .zip or .7z)")
	trace := flag.Bool("trace", false, "Stream executed instructions to websocket clients")
	traceAddr := flag.String("trace-addr", ":8090", "The address to serve the trace on")
	compress := flag.Int("compress", -1, "The brotli level (0-11) to compress trace batches with, -1 disables compression")
	cycles := flag.Uint64("cycles", 0, "Stop after this many clock cycles, 0 runs until the CPU halts")
	debug := flag.Bool("debug", false, "Log every executed instruction")
	flag.Parse()

	var logOpts []log.Opt
	if *debug {
		logOpts = append(logOpts, log.WithDebug())
	}
	logger := log.New(logOpts...)

	if *romFile == "" {
		logger.Fatal("no rom file given, use -rom")
	}
	cart, err := cartridge.Load(*romFile, logger)
	if err != nil {
		logger.Fatal(err.Error())
	}
	fmt.Println(cart.Title())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithCycleBudget(*cycles),
	}
	if *debug {
		opts = append(opts, gameboy.Debug())
	}
	if *trace {
		hubOpts := []web.Opt{web.WithLogger(logger)}
		if *compress >= 0 {
			hubOpts = append(hubOpts, web.WithCompression(*compress))
		}
		hub := web.NewHub(hubOpts...)
		go func() {
			_ = hub.Run(ctx)
		}()
		go func() {
			if err := hub.ListenAndServe(ctx, *traceAddr); err != nil {
				logger.Errorf("trace server: %v", err)
				stop()
			}
		}()
		opts = append(opts, gameboy.WithTracer(hub))
	}

	var gb emulator.Controller = gameboy.NewFromCartridge(cart, opts...)
	start := time.Now()
	executed, err := gb.Run(ctx)
	emulated := time.Duration(float64(executed) / gameboy.ClockSpeed * float64(time.Second))
	logger.Infof("executed %d cycles (%s emulated) in %s, %s", executed, emulated, time.Since(start), gb.Status())

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal(err.Error())
	}
	if *trace && ctx.Err() == nil {
		logger.Infof("serving trace until interrupted")
		<-ctx.Done()
	}
}
