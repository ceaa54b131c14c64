package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"rentloBack/internal/models"
	"rentloBack/internal/repositories"
	"rentloBack/internal/services"
	"rentloBack/utils"
)

type PostHandler struct {
	Service *services.PostService
	Storage *utils.S3Storage
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if errs := validatePost(post); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	post.UserHandle = handle
	if user, err := h.Service.UserRepo.GetUserByHandle(r.Context(), handle); err == nil {
		post.Location = user.Location
	}

	created, err := h.Service.CreatePost(r.Context(), post)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(w, r)
	if !ok {
		return
	}
	post, err := h.Service.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "Post not found")
			return
		}
		if errors.Is(err, repositories.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	q := r.URL.Query()
	filter := models.PostFilter{
		Search:   q.Get("search"),
		Address:  q.Get("address"),
		Postcode: q.Get("postcode"),
		City:     q.Get("city"),
		State:    q.Get("state"),
	}
	if q.Get("hideOwnPosts") == "true" {
		filter.HideHandle = handle
	}
	if categories := q.Get("categories"); categories != "" {
		filter.Categories = strings.Split(categories, ",")
	}
	if minPrice, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil {
		filter.MinPrice = minPrice
	}
	if maxPrice, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		filter.MaxPrice = maxPrice
	}

	posts, err := h.Service.GetFeed(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) GetMyPosts(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	posts, err := h.Service.GetMyPosts(r.Context(), handle)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID, ok := postIDParam(w, r)
	if !ok {
		return
	}

	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if errs := validatePost(post); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	updated, err := h.Service.EditPost(r.Context(), postID, handle, post)
	if err != nil {
		if errors.Is(err, services.ErrPostLocked) {
			writeAction(w, "uneditable")
			return
		}
		if errors.Is(err, repositories.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "Post not found")
			return
		}
		if errors.Is(err, services.ErrNotPostOwner) {
			writeError(w, http.StatusForbidden, "Unauthorized")
			return
		}
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID, ok := postIDParam(w, r)
	if !ok {
		return
	}

	err := h.Service.DeletePost(r.Context(), postID, handle)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
	case errors.Is(err, services.ErrPostLocked):
		writeAction(w, "undeletable")
	case errors.Is(err, repositories.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrNotPostOwner):
		writeError(w, http.StatusForbidden, "Unauthorized")
	default:
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

func (h *PostHandler) DisableItem(w http.ResponseWriter, r *http.Request) {
	h.setAvailability(w, r, false)
}

func (h *PostHandler) EnableItem(w http.ResponseWriter, r *http.Request) {
	h.setAvailability(w, r, true)
}

func (h *PostHandler) setAvailability(w http.ResponseWriter, r *http.Request, available bool) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID, ok := postIDParam(w, r)
	if !ok {
		return
	}

	post, err := h.Service.SetAvailability(r.Context(), postID, handle, available)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, post)
	case errors.Is(err, repositories.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrNotPostOwner):
		writeError(w, http.StatusForbidden, "Unauthorized access")
	case errors.Is(err, services.ErrAlreadyDisabled):
		writeError(w, http.StatusBadRequest, "Post already disabled")
	case errors.Is(err, services.ErrAlreadyEnabled):
		writeError(w, http.StatusBadRequest, "Post already enabled")
	default:
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

// UploadItemImage stores a listing image and returns its public URL.
func (h *PostHandler) UploadItemImage(w http.ResponseWriter, r *http.Request) {
	url, ok := uploadImage(w, r, h.Storage, "posts")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, url)
}

func postIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	postID, err := strconv.Atoi(r.URL.Query().Get(":postId"))
	if err != nil || postID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid post ID")
		return 0, false
	}
	return postID, true
}

// uploadImage reads the multipart "image" part, checks the type and ships
// it to storage under a random name.
func uploadImage(w http.ResponseWriter, r *http.Request, storage *utils.S3Storage, folder string) (string, bool) {
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Please upload an image")
		return "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return "", false
	}

	contentType := http.DetectContentType(data)
	if contentType != "image/jpeg" && contentType != "image/png" {
		writeError(w, http.StatusBadRequest, "Wrong file type submitted")
		return "", false
	}

	fileName := uuid.New().String() + filepath.Ext(header.Filename)
	url, err := storage.UploadFile(data, fileName, folder, contentType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Please upload an image")
		return "", false
	}
	return url, true
}
