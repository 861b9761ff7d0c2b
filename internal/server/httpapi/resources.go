package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/signlink/internal/server/users"
)

const (
	searchLimit = 20

	// maxVideoBytes caps an uploaded video.
	maxVideoBytes = 100 << 20
)

type videoResponse struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Status   string `json:"status"`
}

type profileBody struct {
	Name         string `json:"name" validate:"required,max=150"`
	Username     string `json:"username" validate:"required,max=150"`
	DateOfBirth  string `json:"dateOfBirth"`
	Bio          string `json:"bio" validate:"max=500"`
	Gender       string `json:"gender"`
	ShowASLBadge bool   `json:"showASLBadge"`
}

func newProfileBody(u *users.User) profileBody {
	return profileBody{
		Name:         u.Profile.Name,
		Username:     u.Username,
		DateOfBirth:  u.Profile.DateOfBirth,
		Bio:          u.Profile.Bio,
		Gender:       u.Profile.Gender,
		ShowASLBadge: u.Profile.ShowASLBadge,
	}
}

type translateRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language"`
}

type chatItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Time    string `json:"time,omitempty"`
	Unread  int    `json:"unread,omitempty"`
}

type searchResult struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	Followers string `json:"followers,omitempty"`
	Verified  bool   `json:"verified"`
}

var pinnedChats = []chatItem{
	{ID: "1", Name: "ASL Study Group", Message: "Practice session moved to Friday"},
	{ID: "2", Name: "Interpreters", Message: "New glossary uploaded"},
}

var recentChats = []chatItem{
	{ID: "3", Name: "Maya", Message: "See you at the meetup!", Time: "09:41", Unread: 2},
	{ID: "4", Name: "Jordan", Message: "Thanks for the video", Time: "Yesterday"},
	{ID: "5", Name: "Deaf Culture Club", Message: "Welcome to the club", Time: "Mon"},
}

func (h *handler) getProfile(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	JSON(w, http.StatusOK, newProfileBody(u))
}

func (h *handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())

	var req profileBody
	if err := DecodeJSON(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	if err := h.validate.Struct(req); err != nil {
		FieldErrors(w, fieldErrors(err))
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), u.ID, req.Username, users.Profile{
		Name:         req.Name,
		DateOfBirth:  req.DateOfBirth,
		Bio:          req.Bio,
		Gender:       req.Gender,
		ShowASLBadge: req.ShowASLBadge,
	})
	if err != nil {
		if h.writeConflict(w, err) {
			return
		}
		h.internalError(w, r, "update profile", err)
		return
	}

	JSON(w, http.StatusOK, newProfileBody(updated))
}

// translate is a stand-in for the sign language model: it returns the text
// as an upper-case gloss.
func (h *handler) translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := DecodeJSON(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := h.validate.Struct(req); err != nil {
		FieldErrors(w, fieldErrors(err))
		return
	}

	JSON(w, http.StatusOK, map[string]string{"translation": strings.ToUpper(req.Text)})
}

func (h *handler) pinnedChats(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, pinnedChats)
}

func (h *handler) recentChats(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, recentChats)
}

// search only knows about people; other filters yield an empty list.
func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	filter := r.URL.Query().Get("filter")

	results := []searchResult{}
	if filter != "" && !strings.EqualFold(filter, "People") {
		JSON(w, http.StatusOK, results)
		return
	}

	found, err := h.users.Search(r.Context(), query, searchLimit)
	if err != nil {
		h.internalError(w, r, "search", err)
		return
	}
	for _, u := range found {
		results = append(results, searchResult{
			ID:       strconv.FormatInt(u.ID, 10),
			Username: u.Username,
			FullName: u.FullName(),
		})
	}
	JSON(w, http.StatusOK, results)
}

// processVideo stands in for the sign language video model: it consumes the
// multipart "file" part and reports what it received.
func (h *handler) processVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxVideoBytes)

	mr, err := r.MultipartReader()
	if err != nil {
		Detail(w, http.StatusUnsupportedMediaType, "Expected a multipart/form-data upload.")
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			Detail(w, http.StatusBadRequest, "Malformed multipart body.")
			return
		}
		if part.FormName() != "file" || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		n, err := io.Copy(io.Discard, part)
		_ = part.Close()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				Detail(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large.")
				return
			}
			Detail(w, http.StatusBadRequest, "Malformed multipart body.")
			return
		}

		u, _ := UserFromContext(r.Context())
		h.log.Info(r.Context(), "video received", "user_id", u.ID, "bytes", n)
		JSON(w, http.StatusOK, videoResponse{Filename: part.FileName(), Size: n, Status: "processed"})
		return
	}

	FieldErrors(w, map[string][]string{"file": {"No file was submitted."}})
}
