package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/TheBunnyMan123/bunny-bot/bot/app"
	"github.com/TheBunnyMan123/bunny-bot/bot/config"
	logpkg "github.com/TheBunnyMan123/bunny-bot/bot/logger"
	_ "github.com/TheBunnyMan123/bunny-bot/plugins/github"
	_ "github.com/TheBunnyMan123/bunny-bot/plugins/reddit"
)

var (
	versionName = ""
	commitSHA   = ""
	buildTime   = ""
)

func main() {
	configPath := flag.String("c", "config.ini", "config file")
	link := flag.String("url", "", "resolve one link, print the preview as JSON and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *link != "" {
		if err := previewOnce(ctx, *configPath, *link, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	buildInfo := app.BuildInfo{
		RuntimeVer: runtime.Version(),
		BinVersion: versionName,
		CommitSHA:  commitSHA,
		BuildTime:  buildTime,
		BuildArch:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	application, err := app.New(ctx, *configPath, buildInfo)
	if err != nil {
		panic(err)
	}

	if err := application.Start(ctx); err != nil {
		panic(err)
	}

	<-ctx.Done()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	_ = application.Shutdown(shutdownCtx)
}

// previewOnce resolves link without Telegram. A missing config file falls
// back to defaults; logs go to stderr so stdout stays valid JSON.
func previewOnce(ctx context.Context, configPath, link string, out io.Writer) error {
	conf, err := config.Load(configPath)
	if err != nil {
		if _, statErr := os.Stat(configPath); !errors.Is(statErr, os.ErrNotExist) {
			return err
		}
		conf = config.Defaults()
	}

	log, err := logpkg.New(logpkg.Options{
		Level:     conf.GetString("LogLevel"),
		Format:    conf.GetString("LogFormat"),
		AddSource: conf.GetBool("LogSource"),
		Console:   os.Stderr,
	})
	if err != nil {
		return err
	}
	defer log.Close()
	resolver, _ := app.NewResolver(conf, log)

	doc, err := resolver.Resolve(ctx, link)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}
