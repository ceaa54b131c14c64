package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddleware)

	mux := pat.New()

	// Auth
	mux.Post("/api/signup", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/api/login", standardMiddleware.ThenFunc(app.userHandler.SignIn))

	// Users
	mux.Get("/api/user", authMiddleware.ThenFunc(app.userHandler.GetAuthenticatedUser))
	mux.Post("/api/user", authMiddleware.ThenFunc(app.userHandler.UpdateUserDetails))
	mux.Post("/api/user/image", authMiddleware.ThenFunc(app.userHandler.UploadUserImage))
	mux.Post("/api/user/expoPushToken", authMiddleware.ThenFunc(app.userHandler.UpdatePushToken))
	mux.Get("/api/user/:handle", standardMiddleware.ThenFunc(app.userHandler.GetUserDetails))

	// Posts
	mux.Post("/api/post/image", authMiddleware.ThenFunc(app.postHandler.UploadItemImage))
	mux.Post("/api/post", authMiddleware.ThenFunc(app.postHandler.CreatePost))
	mux.Get("/api/posts", authMiddleware.ThenFunc(app.postHandler.GetAllPosts))
	mux.Get("/api/myposts", authMiddleware.ThenFunc(app.postHandler.GetMyPosts))
	mux.Get("/api/post/:postId/disable", authMiddleware.ThenFunc(app.postHandler.DisableItem))
	mux.Get("/api/post/:postId/enable", authMiddleware.ThenFunc(app.postHandler.EnableItem))
	mux.Get("/api/post/:postId", standardMiddleware.ThenFunc(app.postHandler.GetPost))
	mux.Post("/api/post/:postId", authMiddleware.ThenFunc(app.postHandler.EditPost))
	mux.Del("/api/post/:postId", authMiddleware.ThenFunc(app.postHandler.DeletePost))

	// Rentals
	mux.Post("/api/rentalRequest", authMiddleware.ThenFunc(app.rentalHandler.SendRentalRequest))
	mux.Get("/api/rentalRequests", authMiddleware.ThenFunc(app.rentalHandler.GetRentalRequests))
	mux.Get("/api/rentalActivities", authMiddleware.ThenFunc(app.rentalHandler.GetRentalActivities))
	mux.Get("/api/rentalRequest/approve/:requestId", authMiddleware.ThenFunc(app.rentalHandler.ApproveRentalRequest))
	mux.Get("/api/rentalRequest/remove/:requestId", authMiddleware.ThenFunc(app.rentalHandler.RemoveRentalRequest))

	// Messages
	mux.Get("/api/messages", authMiddleware.ThenFunc(app.messageHandler.GetUserMessages))
	mux.Get("/api/messages/:handle/read", authMiddleware.ThenFunc(app.messageHandler.ReadMessages))

	// Relay
	mux.Get("/ws", standardMiddleware.ThenFunc(app.RelayHandler))

	return mux
}
