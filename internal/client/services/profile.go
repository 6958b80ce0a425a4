package services

import (
	"context"

	"github.com/dmitrijs2005/photoshare/internal/client/models"
)

func (a *authService) OpenProfileEditor() {
	a.state.OpenProfile()
}

// UpdateProfile renames the own profile and optionally uploads a new avatar.
// The new nickname is shown immediately; the server's answer then replaces
// the profile in place. A failed request is not rolled back. The profile
// editor is closed afterwards on every path.
func (a *authService) UpdateProfile(ctx context.Context, nickName string, img *models.ProfileImage) (err error) {
	if err := ValidateNickName(nickName); err != nil {
		return err
	}
	me := a.state.Snapshot().MyProfile
	if me.IsZero() {
		return ErrNotSignedIn
	}

	r := a.start(ctx, WorkflowUpdateProfile)
	defer func() {
		a.state.CloseProfile()
		r.finish(err)
	}()

	a.state.RenameMyProfileLocally(nickName)
	me.NickName = nickName

	updated, err := a.api.UpdateProfile(r.ctx, me, img)
	if err = r.step("update profile", err); err != nil {
		return err
	}
	a.state.UpdateMyProfileInPlace(updated)
	return nil
}
