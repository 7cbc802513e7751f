package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.jwtAuth)

	mux := pat.New()

	// Auth
	mux.Post("/api/auth/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/api/auth/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/api/auth/refresh", standardMiddleware.ThenFunc(app.userHandler.Refresh))
	mux.Post("/api/auth/logout", authMiddleware.ThenFunc(app.userHandler.Logout))

	// Profile
	mux.Get("/api/user/profile", authMiddleware.ThenFunc(app.userHandler.GetProfile))
	mux.Post("/api/user/profile", authMiddleware.ThenFunc(app.userHandler.UpdateProfile))
	mux.Post("/api/user/password", authMiddleware.ThenFunc(app.userHandler.ChangePassword))

	// Flights
	mux.Post("/api/flights/search", standardMiddleware.ThenFunc(app.flightHandler.Search))
	mux.Get("/api/flights/search", standardMiddleware.ThenFunc(app.flightHandler.Search))

	// Trips
	mux.Post("/api/trips", authMiddleware.ThenFunc(app.tripHandler.CreateTrip))
	mux.Get("/api/trips", authMiddleware.ThenFunc(app.tripHandler.ListTrips))
	mux.Get("/api/trips/:id", authMiddleware.ThenFunc(app.tripHandler.GetTrip))
	mux.Del("/api/trips/:id", authMiddleware.ThenFunc(app.tripHandler.DeleteTrip))
	mux.Post("/api/trips/:id/favorite", authMiddleware.ThenFunc(app.tripHandler.ToggleFavorite))
	mux.Post("/api/trips/:id/cover", authMiddleware.ThenFunc(app.tripHandler.UploadCover))

	// Stories
	mux.Get("/api/stories", authMiddleware.ThenFunc(app.storyHandler.Feed))
	mux.Post("/api/stories", authMiddleware.ThenFunc(app.storyHandler.CreateStory))
	mux.Put("/api/stories/:id", authMiddleware.ThenFunc(app.storyHandler.UpdateStory))
	mux.Del("/api/stories/:id", authMiddleware.ThenFunc(app.storyHandler.DeleteStory))
	mux.Post("/api/stories/:id/like", authMiddleware.ThenFunc(app.storyHandler.ToggleLike))
	mux.Post("/api/stories/:id/save", authMiddleware.ThenFunc(app.storyHandler.ToggleSave))
	mux.Post("/api/stories/:id/comments", authMiddleware.ThenFunc(app.storyHandler.AddComment))

	// Public share links
	mux.Get("/api/share/trip/:uuid", standardMiddleware.ThenFunc(app.tripHandler.SharedTrip))
	mux.Get("/api/share/story/:uuid", standardMiddleware.ThenFunc(app.storyHandler.SharedStory))

	// Support
	mux.Post("/api/support", standardMiddleware.ThenFunc(app.supportHandler.Submit))

	return mux
}
