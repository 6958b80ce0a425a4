package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/photoshare/internal/client/models"
	"github.com/dmitrijs2005/photoshare/internal/client/services"
)

// readFile is a test seam for avatar uploads.
var readFile = os.ReadFile

func (a *App) WhoAmI(context.Context) error {
	s := a.authService.State()
	if !s.Authenticated() {
		return services.ErrNotSignedIn
	}
	printProfile(a, s.MyProfile)
	return nil
}

func (a *App) Profiles(context.Context) error {
	s := a.authService.State()
	if !s.Authenticated() {
		return services.ErrNotSignedIn
	}
	if len(s.AllProfiles) == 0 {
		fmt.Fprintln(a.out, "No profiles")
		return nil
	}
	for _, p := range s.AllProfiles {
		marker := " "
		if p.ID == s.MyProfile.ID {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %4d  %s\n", marker, p.ID, p.NickName)
	}
	return nil
}

// Rename opens the profile editor, asks for a nickname and an optional
// avatar file and sends both.
func (a *App) Rename(ctx context.Context) error {
	if !a.isLoggedIn() {
		return services.ErrNotSignedIn
	}
	a.authService.OpenProfileEditor()

	nick, err := getSimpleText(a.reader, "New nickname", a.out)
	if err != nil {
		return err
	}
	path, err := getSimpleText(a.reader, "Avatar file (empty to keep)", a.out)
	if err != nil {
		return err
	}

	var img *models.ProfileImage
	if path != "" {
		data, err := readFile(path)
		if err != nil {
			return fmt.Errorf("read avatar: %w", err)
		}
		img = &models.ProfileImage{FileName: filepath.Base(path), Data: data}
	}

	if err := a.authService.UpdateProfile(ctx, nick, img); err != nil {
		return err
	}
	printProfile(a, a.authService.State().MyProfile)
	return nil
}

func printProfile(a *App, p models.Profile) {
	fmt.Fprintf(a.out, "id:       %d\n", p.ID)
	fmt.Fprintf(a.out, "nickname: %s\n", p.NickName)
	fmt.Fprintf(a.out, "created:  %s\n", p.CreatedAt)
	if p.AvatarImage != "" {
		fmt.Fprintf(a.out, "avatar:   %s\n", p.AvatarImage)
	}
}
