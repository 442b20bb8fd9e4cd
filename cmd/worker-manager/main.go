// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apihttp "careerfit-workers/internal/api/http"
	"careerfit-workers/internal/api/http/handlers"
	"careerfit-workers/internal/app"
	"careerfit-workers/internal/careerfit"
	"careerfit-workers/internal/common/aws"
	"careerfit-workers/internal/common/camunda"
	"careerfit-workers/internal/common/config"
	"careerfit-workers/internal/common/database"
	"careerfit-workers/internal/common/logger"
	"careerfit-workers/pkg/registry"

	glr "careerfit-workers/internal/workers/career/generate-learning-resources"
	pcp "careerfit-workers/internal/workers/career/predict-career-paths"
	scr "careerfit-workers/internal/workers/communication/send-career-report"
)

func main() {
	bootLog := logger.NewStructured("info", "console")
	bootLog.Info("Starting worker manager...", nil)

	cfg, err := config.Load()
	if err != nil {
		bootLog.Error("config load failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	if err := cfg.ValidateForWorkers(); err != nil {
		bootLog.Error("invalid worker configuration", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	log := app.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = app.RetryWithBackoff(ctx, func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		log.Error("zeebe client failed after retries", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer zeebe.Close()
	log.Info("Zeebe client connected successfully", nil)

	a, err := app.New(ctx, cfg, log, "worker-manager")
	if err != nil {
		log.Error("backend initialization failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer a.Close()

	reg, err := registry.LoadRegistry(registry.DefaultPath)
	if err != nil {
		log.Warn("activity registry unavailable", map[string]interface{}{"path": registry.DefaultPath, "error": err.Error()})
		reg = &registry.ActivityRegistry{}
	}

	// --- Register workers ---
	var workers []worker.JobWorker
	start := func(taskType string, h camunda.JobHandler) {
		if activity, ok := reg.Lookup(taskType); ok {
			log.Debug("registering activity", map[string]interface{}{"taskType": taskType, "version": activity.Version})
		} else {
			log.Warn("task type missing from activity registry", map[string]interface{}{"taskType": taskType})
		}
		if jw := camunda.StartWorker(zeebe.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), h, a.Obs, log); jw != nil {
			workers = append(workers, jw)
		}
	}

	predictCfg := pcp.DefaultConfig()
	predictCfg.Timeout = config.GetDuration(config.GetWorkerConfig(cfg, pcp.TaskType).Timeout)
	start(pcp.TaskType, pcp.NewHandler(predictCfg, a.Service, log))

	resourcesCfg := glr.DefaultConfig()
	resourcesCfg.Timeout = config.GetDuration(config.GetWorkerConfig(cfg, glr.TaskType).Timeout)
	start(glr.TaskType, glr.NewHandler(resourcesCfg, careerfit.DefaultResourceLibrary(), log))

	if config.IsWorkerEnabled(cfg, scr.TaskType) {
		reportCfg := scr.DefaultConfig()
		reportCfg.EmailEnabled = cfg.Notifications.Email.Enabled
		reportCfg.FromEmail = cfg.Notifications.Email.FromEmail
		reportCfg.SMSEnabled = cfg.Notifications.SMS.Enabled
		reportCfg.SMSSenderID = cfg.Notifications.SMS.SenderID
		reportCfg.Timeout = config.GetDuration(config.GetWorkerConfig(cfg, scr.TaskType).Timeout)
		if err := reportCfg.Validate(); err != nil {
			log.Error("invalid send-career-report configuration", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}

		clients, err := aws.NewClients(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			log.Error("aws clients failed", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
		start(scr.TaskType, scr.NewHandler(reportCfg, clients.SES, clients.SNS, log))
	}
	log.Info("Workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	probes := apihttp.NewApp(apihttp.ServerConfig{
		ReadTimeout:  config.GetDuration(cfg.HTTP.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.HTTP.WriteTimeout),
	}, log)
	backends := append([]database.Pinger{zeebe}, a.Pingers()...)
	apihttp.RegisterProbes(probes, handlers.NewHealthHandler(5*time.Second, backends...))

	addr := fmt.Sprintf(":%d", cfg.HTTP.HealthPort)
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"address": addr})
		if err := apihttp.Serve(ctx, probes, addr); err != nil {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info("Shutdown signal received, stopping workers...", nil)
	for _, jw := range workers {
		jw.Close()
		jw.AwaitClose()
	}
	log.Info("Worker manager stopped gracefully", nil)
}
