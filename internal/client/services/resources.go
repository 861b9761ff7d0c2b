package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/signlink/internal/client/client"
	"github.com/dmitrijs2005/signlink/internal/client/models"
	"github.com/go-playground/validator/v10"
)

const (
	// DefaultLanguage is used by Translate when no language is given.
	DefaultLanguage = "English"
	// DefaultSearchFilter is used by Search when no filter is given.
	DefaultSearchFilter = "People"
)

// VideoFormField is the multipart field carrying the uploaded video.
const VideoFormField = "file"

var (
	errMissingText      = errors.New("please type a message to translate")
	errMissingVideoName = errors.New("video file name is required")
)

// ResourceService wraps the authenticated backend endpoints.
type ResourceService interface {
	UpdateProfile(ctx context.Context, p models.ProfileUpdate) error
	Translate(ctx context.Context, text, language string) (string, error)
	PinnedChats(ctx context.Context) ([]models.ChatItem, error)
	RecentChats(ctx context.Context) ([]models.ChatItem, error)
	Search(ctx context.Context, query, filter string) ([]models.SearchResult, error)
	ProcessVideo(ctx context.Context, name string, r io.Reader) (*models.VideoResult, error)
}

type resourceService struct {
	client   client.Client
	validate *validator.Validate
}

func NewResourceService(c client.Client) ResourceService {
	return &resourceService{client: c, validate: newValidator()}
}

func (s *resourceService) UpdateProfile(ctx context.Context, p models.ProfileUpdate) error {
	const op = "update profile"

	if err := checkInput(s.validate, op, p); err != nil {
		return err
	}
	if err := s.client.Do(ctx, http.MethodPut, "/profile/", p, nil); err != nil {
		return classify(op, err)
	}
	return nil
}

func (s *resourceService) Translate(ctx context.Context, text, language string) (string, error) {
	const op = "translate"

	if strings.TrimSpace(text) == "" {
		return "", &client.Error{Op: op, Kind: client.KindValidation, Field: "text", Err: errMissingText}
	}
	if language == "" {
		language = DefaultLanguage
	}

	var resp models.TranslationResponse
	req := models.TranslationRequest{Text: text, Language: language}
	if err := s.client.Do(ctx, http.MethodPost, "/translate/", req, &resp); err != nil {
		return "", classify(op, err)
	}
	return resp.Translation, nil
}

func (s *resourceService) PinnedChats(ctx context.Context) ([]models.ChatItem, error) {
	return s.chats(ctx, "pinned chats", "/chats/pinned/")
}

func (s *resourceService) RecentChats(ctx context.Context) ([]models.ChatItem, error) {
	return s.chats(ctx, "recent chats", "/chats/recent/")
}

func (s *resourceService) chats(ctx context.Context, op, path string) ([]models.ChatItem, error) {
	var items []models.ChatItem
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, classify(op, err)
	}
	return items, nil
}

// Search returns no results without calling the backend when query is blank.
func (s *resourceService) Search(ctx context.Context, query, filter string) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if filter == "" {
		filter = DefaultSearchFilter
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("filter", filter)

	var results []models.SearchResult
	if err := s.client.Do(ctx, http.MethodGet, "/search/?"+params.Encode(), nil, &results); err != nil {
		return nil, classify("search", err)
	}
	return results, nil
}

// ProcessVideo streams r as a multipart upload named name. The body is
// produced while it is sent, so r is read exactly once.
func (s *resourceService) ProcessVideo(ctx context.Context, name string, r io.Reader) (*models.VideoResult, error) {
	const op = "process video"

	if strings.TrimSpace(name) == "" {
		return nil, &client.Error{Op: op, Kind: client.KindValidation, Field: "name", Err: errMissingVideoName}
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile(VideoFormField, name)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		if err != nil {
			pw.CloseWithError(fmt.Errorf("write upload: %w", err))
			return
		}
		_ = pw.Close()
	}()

	var result models.VideoResult
	err := s.client.DoBody(ctx, http.MethodPost, "/process-video/", mw.FormDataContentType(), pr, &result)
	// unblocks the writer if the request ended before the body was consumed
	_ = pr.Close()
	if err != nil {
		return nil, classify(op, err)
	}
	return &result, nil
}
