package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/signlink/internal/client/client"
	"github.com/dmitrijs2005/signlink/internal/client/models"
)

func (a *App) Translate(ctx context.Context, text string) error {
	translation, err := a.resources.Translate(ctx, text, a.language)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Translated (%s): %s\n", a.language, translation)
	return nil
}

// Upload sends the video at path for processing.
func (a *App) Upload(ctx context.Context, path string) error {
	const op = "upload"

	if path == "" {
		fmt.Fprintln(a.out, "Usage: upload <path>")
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return &client.Error{Op: op, Kind: client.KindValidation, Field: "path", Err: fmt.Errorf("cannot open %s", path)}
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return &client.Error{Op: op, Kind: client.KindValidation, Field: "path", Err: fmt.Errorf("cannot read %s", path)}
	}
	if fi.IsDir() {
		return &client.Error{Op: op, Kind: client.KindValidation, Field: "path", Err: errors.New(path + " is a directory")}
	}

	name := filepath.Base(path)
	fmt.Fprintf(a.out, "Uploading %s (%.2f MB)...\n", name, float64(fi.Size())/1024/1024)

	res, err := a.resources.ProcessVideo(ctx, name, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Video processed: %s (%s)\n", res.Filename, res.Status)
	return nil
}

func (a *App) SetLanguage(_ context.Context, language string) error {
	if language == "" {
		fmt.Fprintln(a.out, "Current language:", a.language)
		return nil
	}
	a.language = language
	fmt.Fprintln(a.out, "Language set to", language)
	return nil
}

func (a *App) Chats(ctx context.Context) error {
	pinned, err := a.resources.PinnedChats(ctx)
	if err != nil {
		return err
	}
	recent, err := a.resources.RecentChats(ctx)
	if err != nil {
		return err
	}

	a.printChats("Pinned", pinned)
	a.printChats("Recent", recent)
	return nil
}

func (a *App) printChats(title string, items []models.ChatItem) {
	fmt.Fprintf(a.out, "%s:\n", title)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "  (none)")
		return
	}
	for _, c := range items {
		line := fmt.Sprintf("  %s: %s", c.Name, c.Message)
		if c.Time != "" {
			line += "  " + c.Time
		}
		if c.Unread > 0 {
			line += fmt.Sprintf("  [%d unread]", c.Unread)
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *App) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(a.out, "Usage: search <query>")
		return nil
	}

	results, err := a.resources.Search(ctx, query, "")
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(a.out, "No results.")
		return nil
	}
	for _, r := range results {
		mark := ""
		if r.Verified {
			mark = " (verified)"
		}
		fmt.Fprintf(a.out, "  @%s %s%s\n", r.Username, r.FullName, mark)
	}
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	p, err := a.auth.Profile(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Fprintln(a.out, "Signed in, profile not available.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (id %d)\n", p.Username, p.Email, p.ID)
	return nil
}

// EditProfile prompts for every profile field. An empty username falls back
// to the cached one.
func (a *App) EditProfile(ctx context.Context) error {
	var upd models.ProfileUpdate

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Name", &upd.Name},
		{"Username (empty keeps the current one)", &upd.Username},
		{"Date of birth", &upd.DateOfBirth},
		{"Bio", &upd.Bio},
		{"Gender", &upd.Gender},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	badge, err := GetYesNo(a.reader, "Show ASL badge?", a.out)
	if err != nil {
		return err
	}
	upd.ShowASLBadge = badge

	if upd.Username == "" {
		if p, err := a.auth.Profile(ctx); err == nil && p != nil {
			upd.Username = p.Username
		}
	}

	if err := a.resources.UpdateProfile(ctx, upd); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile saved.")
	return nil
}
