package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/dmitrijs2005/signlink/internal/client/client"
	"github.com/dmitrijs2005/signlink/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResourceService(fc)
	upd := models.ProfileUpdate{Name: "Ann", Username: "ann", Bio: "hi", ShowASLBadge: true}

	require.NoError(t, svc.UpdateProfile(context.Background(), upd))
	assert.Equal(t, http.MethodPut, fc.LastMethod)
	assert.Equal(t, "/profile/", fc.LastPath)
	assert.Equal(t, upd, fc.LastPayload)
}

func TestUpdateProfile_RequiresNameAndUsername(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResourceService(fc)

	err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{Username: "ann"})
	require.ErrorIs(t, err, client.ErrValidation)
	var e *client.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "name", e.Field)

	err = svc.UpdateProfile(context.Background(), models.ProfileUpdate{Name: "Ann"})
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Equal(t, 0, fc.Calls)
}

func TestTranslate(t *testing.T) {
	fc := &fakeClient{DoFill: func(out any) {
		out.(*models.TranslationResponse).Translation = "HELLO"
	}}
	svc := NewResourceService(fc)

	got, err := svc.Translate(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", got)
	assert.Equal(t, "/translate/", fc.LastPath)
	assert.Equal(t, models.TranslationRequest{Text: "hello", Language: DefaultLanguage}, fc.LastPayload)
}

func TestTranslate_BlankTextIsRejectedLocally(t *testing.T) {
	fc := &fakeClient{}
	_, err := NewResourceService(fc).Translate(context.Background(), "   ", "ASL")
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Equal(t, 0, fc.Calls)
}

func TestChats(t *testing.T) {
	items := []models.ChatItem{{ID: "1", Name: "Ann", Message: "hi", Unread: 2}}
	fc := &fakeClient{DoFill: func(out any) { *out.(*[]models.ChatItem) = items }}
	svc := NewResourceService(fc)

	got, err := svc.PinnedChats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, got)
	assert.Equal(t, "/chats/pinned/", fc.LastPath)

	_, err = svc.RecentChats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/chats/recent/", fc.LastPath)
}

func TestChats_UnauthorizedPassesThrough(t *testing.T) {
	fc := &fakeClient{DoErr: &client.Error{Op: "GET /chats/recent/", Kind: client.KindUnauthorized, Status: 401}}
	_, err := NewResourceService(fc).RecentChats(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestSearch(t *testing.T) {
	hits := []models.SearchResult{{ID: "u1", Username: "ann", FullName: "Ann Lee", Verified: true}}
	fc := &fakeClient{DoFill: func(out any) { *out.(*[]models.SearchResult) = hits }}
	svc := NewResourceService(fc)

	got, err := svc.Search(context.Background(), "ann lee", "")
	require.NoError(t, err)
	assert.Equal(t, hits, got)
	assert.Equal(t, http.MethodGet, fc.LastMethod)
	assert.Equal(t, "/search/?filter=People&query=ann+lee", fc.LastPath)
}

func TestSearch_BlankQuerySkipsBackend(t *testing.T) {
	fc := &fakeClient{}
	got, err := NewResourceService(fc).Search(context.Background(), "  ", "Posts")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, fc.Calls)
}

func TestProcessVideo_SendsMultipartFile(t *testing.T) {
	fc := &fakeClient{DoFill: func(out any) {
		*out.(*models.VideoResult) = models.VideoResult{Filename: "hello.mp4", Size: 11, Status: "processed"}
	}}
	svc := NewResourceService(fc)

	res, err := svc.ProcessVideo(context.Background(), "hello.mp4", strings.NewReader("video bytes"))
	require.NoError(t, err)
	assert.Equal(t, &models.VideoResult{Filename: "hello.mp4", Size: 11, Status: "processed"}, res)

	assert.Equal(t, http.MethodPost, fc.LastMethod)
	assert.Equal(t, "/process-video/", fc.LastPath)

	mediaType, params, err := mime.ParseMediaType(fc.LastContentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	mr := multipart.NewReader(bytes.NewReader(fc.LastBody), params["boundary"])
	part, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, VideoFormField, part.FormName())
	assert.Equal(t, "hello.mp4", part.FileName())
	data, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "video bytes", string(data))

	_, err = mr.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestProcessVideo_RequiresName(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResourceService(fc)

	_, err := svc.ProcessVideo(context.Background(), "  ", strings.NewReader("x"))
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Equal(t, 0, fc.Calls)
}

func TestProcessVideo_PassesClientErrorsThrough(t *testing.T) {
	fc := &fakeClient{DoErr: &client.Error{Op: "POST /process-video/", Kind: client.KindUnauthorized, Status: 401}}
	svc := NewResourceService(fc)

	_, err := svc.ProcessVideo(context.Background(), "a.mp4", strings.NewReader("x"))
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestProcessVideo_ReaderFailureIsNotLost(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResourceService(fc)

	_, err := svc.ProcessVideo(context.Background(), "a.mp4", iotest.ErrReader(errors.New("disk read")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk read")
}
