package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"socialdown/config"
	"socialdown/internal/Service"
	"socialdown/internal/Service/fetcher"
	"socialdown/internal/Service/processor"
	"socialdown/internal/controller"
	"socialdown/internal/repository"
	pkghttp "socialdown/pkg/http"
	"socialdown/pkg/jobrunner"
	"socialdown/pkg/logster"
	"socialdown/pkg/sig"
)

const localConfig = "config/config_local.yaml"

func main() {
	var appConfig config.Config
	var configFile string
	// читаем флаги запуска
	flag.StringVar(&configFile, "config", localConfig, "Path to the config file")
	flag.Parse()

	// .env может переопределить адрес сервера
	_ = godotenv.Load()

	err := config.LoadConfig(configFile, &appConfig)
	if err != nil {
		panic(err)
	}
	appConfig.ApplyEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Создаем логер
	logger := logster.New(os.Stdout, appConfig.Logger)
	defer func() { _ = logger.Sync() }()

	logger.Infof("starting application with config %+v", appConfig)

	// создаем errgroup
	g, ctx := errgroup.WithContext(ctx)

	// Gracefully shutdown
	g.Go(func() error {
		return sig.ListenSignal(ctx, logger, cancel)
	})

	// создаем зависимости
	repo := repository.NewStorage(logger)
	mockFetcher := fetcher.NewMockFetcher(appConfig.Fetcher, logger)
	proc := processor.New(appConfig.Processor, repo, mockFetcher, logger)
	runner := jobrunner.New(ctx, logger)

	service := Service.NewServiceObj(repo, runner, proc, logger)
	handlerObj := controller.NewHandlers(service, logger)

	// создаем хэндлер
	handler := pkghttp.NewHandler("/", pkghttp.WithLogger(logger), pkghttp.DefaultTechOptions(), controller.WithApiHandler(handlerObj))
	logger.Infof("Create and configure handler")

	// запускаем http server
	g.Go(func() error {
		return logster.LogIfError(
			logger, pkghttp.RunServer(ctx, appConfig.HttpServer.Addr+":"+appConfig.HttpServer.Port, logger, handler),
			"Api server",
		)
	})

	// дожидаемся фоновых воркеров при остановке
	g.Go(func() error {
		<-ctx.Done()
		return logster.LogIfError(
			logger, runner.Shutdown(context.Background()), "Job runner",
		)
	})

	// ждем завершения
	err = g.Wait()
	if err != nil && !errors.Is(err, sig.ErrSignalReceived) {
		logger.WithError(err).Errorf("Exit reason")
	}
}
