package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)

	mux := pat.New()

	// Public catalog
	mux.Get("/api/listings/:category", standardMiddleware.ThenFunc(app.listingHandler.GetListings))
	mux.Get("/api/city-counts/:category", standardMiddleware.ThenFunc(app.listingHandler.GetCityCounts))
	mux.Get("/api/status", standardMiddleware.ThenFunc(app.listingHandler.GetStatus))
	mux.Get("/api/banners", standardMiddleware.ThenFunc(app.bannerHandler.List))

	// Presence
	mux.Post("/api/ping", standardMiddleware.ThenFunc(app.presenceHandler.Ping))
	mux.Get("/api/online", standardMiddleware.ThenFunc(app.presenceHandler.Online))

	// Public submissions
	mux.Get("/api/captcha", standardMiddleware.ThenFunc(app.captchaHandler.GetCaptcha))
	mux.Post("/api/submit-listing", standardMiddleware.ThenFunc(app.submissionHandler.SubmitListing))
	mux.Post("/api/submit-restaurant", standardMiddleware.ThenFunc(app.submissionHandler.SubmitRestaurant))
	mux.Post("/api/submit-entertainment", standardMiddleware.ThenFunc(app.submissionHandler.SubmitEntertainment))
	mux.Post("/api/submit-tour", standardMiddleware.ThenFunc(app.submissionHandler.SubmitTour))
	mux.Post("/api/submit-transport", standardMiddleware.ThenFunc(app.submissionHandler.SubmitTransport))
	mux.Post("/api/submit-kids", standardMiddleware.ThenFunc(app.submissionHandler.SubmitKids))

	// Telegram verification
	mux.Post("/api/chat/request-code", standardMiddleware.ThenFunc(app.verificationHandler.RequestCode))
	mux.Post("/api/chat/verify-code", standardMiddleware.ThenFunc(app.verificationHandler.VerifyCode))

	// Admin
	mux.Post("/api/admin/auth", standardMiddleware.ThenFunc(app.adminHandler.Auth))
	mux.Get("/api/admin/pending", standardMiddleware.ThenFunc(app.adminHandler.Pending))
	mux.Post("/api/admin/moderate", standardMiddleware.ThenFunc(app.adminHandler.Moderate))
	mux.Post("/api/admin/delete-listing", standardMiddleware.ThenFunc(app.adminHandler.DeleteListing))
	mux.Post("/api/admin/move-listing", standardMiddleware.ThenFunc(app.adminHandler.MoveListing))
	mux.Post("/api/admin/toggle-visibility", standardMiddleware.ThenFunc(app.adminHandler.ToggleVisibility))
	mux.Post("/api/admin/bulk-hide", standardMiddleware.ThenFunc(app.adminHandler.BulkHide))
	mux.Post("/api/admin/edit-listing", standardMiddleware.ThenFunc(app.adminHandler.EditListing))
	mux.Get("/api/admin/get-listing", standardMiddleware.ThenFunc(app.adminHandler.GetListing))
	mux.Post("/api/admin/add-listing", standardMiddleware.ThenFunc(app.adminHandler.AddListing))

	// Admin: channels and import
	mux.Get("/api/admin/channels", standardMiddleware.ThenFunc(app.channelHandler.List))
	mux.Post("/api/admin/channels/add", standardMiddleware.ThenFunc(app.channelHandler.Add))
	mux.Post("/api/admin/channels/remove", standardMiddleware.ThenFunc(app.channelHandler.Remove))
	mux.Post("/api/admin/import", standardMiddleware.ThenFunc(app.importHandler.Run))

	// Admin: banners
	mux.Post("/api/admin/banners/upload", standardMiddleware.ThenFunc(app.bannerHandler.Upload))
	mux.Post("/api/admin/banners/delete", standardMiddleware.ThenFunc(app.bannerHandler.Delete))
	mux.Post("/api/admin/banners/reorder", standardMiddleware.ThenFunc(app.bannerHandler.Reorder))

	return mux
}
