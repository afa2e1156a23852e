package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/jessevdk/go-flags"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"parking/gateway"
	"parking/service"
	"parking/tracing"
)

type options struct {
	HTTPAddr       string `long:"http-addr" env:"HTTP_ADDR" default:":8080" description:"address the HTTP facade listens on"`
	RedisAddr      string `long:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379" description:"address of the local redis instance"`
	JaegerEndpoint string `long:"jaeger-endpoint" env:"JAEGER_ENDPOINT" description:"jaeger collector endpoint"`
	GateAddr       string `long:"gate-addr" env:"GATE_ADDR" default:"http://localhost:8090" description:"base URL of the barrier gate controller"`
	PrinterAddr    string `long:"printer-addr" env:"PRINTER_ADDR" default:"http://localhost:8091" description:"base URL of the receipt printer"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	tp := tracing.ConfigureTraceProvider(opts.JaegerEndpoint)
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr: opts.RedisAddr,
	})
	defer redisClient.Close()

	svc := service.New(
		opts.HTTPAddr,
		redisClient,
		gateway.NewGateClient(opts.GateAddr),
		gateway.NewPrinterClient(opts.PrinterAddr),
	)

	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("service stopped")
	}
}
