package main

import (
	"log"

	"github.com/go-playground/validator/v10"

	"goldantelope/internal/config"
	"goldantelope/internal/handlers"
	"goldantelope/internal/repositories"
	"goldantelope/internal/services"
	"goldantelope/internal/telegram"
	"goldantelope/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger

	captchaHandler      *handlers.CaptchaHandler
	presenceHandler     *handlers.PresenceHandler
	listingHandler      *handlers.ListingHandler
	submissionHandler   *handlers.SubmissionHandler
	adminHandler        *handlers.AdminHandler
	channelHandler      *handlers.ChannelHandler
	importHandler       *handlers.ImportHandler
	bannerHandler       *handlers.BannerHandler
	verificationHandler *handlers.VerificationHandler
}

func initializeApp(cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	catalogRepo := &repositories.CatalogRepository{DataDir: cfg.Data.Dir, ErrorLog: errorLog}
	pendingRepo := &repositories.PendingRepository{DataDir: cfg.Data.Dir}
	channelsRepo := &repositories.ChannelsRepository{DataDir: cfg.Data.Dir}
	bannerRepo := &repositories.BannerRepository{DataDir: cfg.Data.Dir}

	relay := telegram.NewClient(nil, cfg.Telegram.BotToken, cfg.Telegram.PhotoChannel)
	if !relay.Configured() {
		infoLog.Printf("telegram relay not configured; photo relay and notifications disabled")
	}

	var bannerStorage *utils.BannerStorage
	if cfg.Storage.Bucket != "" {
		bannerStorage = &utils.BannerStorage{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
		}
	}

	// Services
	captchaService := services.NewCaptchaService()
	presenceService := services.NewPresenceService(cfg.Presence.Baseline)
	verificationService := services.NewVerificationService(relay)
	catalogService := &services.CatalogService{
		CatalogRepo:  catalogRepo,
		ChannelsRepo: channelsRepo,
		Relay:        relay,
		ErrorLog:     errorLog,
	}
	moderationService := &services.ModerationService{
		PendingRepo:  pendingRepo,
		CatalogRepo:  catalogRepo,
		Captcha:      captchaService,
		Relay:        relay,
		Validate:     validator.New(),
		NotifyChatID: cfg.Telegram.NotifyChatID,
		StaticDir:    cfg.Data.StaticDir,
		InfoLog:      infoLog,
		ErrorLog:     errorLog,
	}
	importService := &services.ImportService{
		CatalogRepo: catalogRepo,
		Relay:       relay,
		InfoLog:     infoLog,
		ErrorLog:    errorLog,
	}
	channelService := &services.ChannelService{ChannelsRepo: channelsRepo}
	bannerService := &services.BannerService{
		BannerRepo: bannerRepo,
		Storage:    bannerStorage,
		ErrorLog:   errorLog,
	}

	// Handlers
	adminHandler := &handlers.AdminHandler{
		Catalog:    catalogService,
		Moderation: moderationService,
		AdminKey:   cfg.Admin.Key,
	}

	return &application{
		errorLog:            errorLog,
		infoLog:             infoLog,
		captchaHandler:      &handlers.CaptchaHandler{Service: captchaService},
		presenceHandler:     &handlers.PresenceHandler{Service: presenceService},
		listingHandler:      &handlers.ListingHandler{Catalog: catalogService},
		submissionHandler:   &handlers.SubmissionHandler{Moderation: moderationService},
		adminHandler:        adminHandler,
		channelHandler:      &handlers.ChannelHandler{Channels: channelService, Admin: adminHandler},
		importHandler:       &handlers.ImportHandler{Import: importService, Admin: adminHandler},
		bannerHandler:       &handlers.BannerHandler{Banners: bannerService, Admin: adminHandler},
		verificationHandler: &handlers.VerificationHandler{Verification: verificationService},
	}
}
