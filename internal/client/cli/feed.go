package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/photoshare/internal/client/services"
)

// Feed prints the posts loaded during sign-in, each followed by its comments.
func (a *App) Feed(context.Context) error {
	if !a.isLoggedIn() {
		return services.ErrNotSignedIn
	}
	posts := a.feed.Posts()
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts")
		return nil
	}

	names := map[int64]string{}
	for _, p := range a.authService.State().AllProfiles {
		names[p.OwnerUserID] = p.NickName
	}

	for _, p := range posts {
		author := names[p.UserPost]
		if author == "" {
			author = fmt.Sprintf("user %d", p.UserPost)
		}
		fmt.Fprintf(a.out, "#%d %s by %s (%d likes)\n", p.ID, p.Title, author, len(p.LikedBy))
		for _, c := range a.feed.CommentsFor(p.ID) {
			fmt.Fprintf(a.out, "    - %s\n", c.Text)
		}
	}
	return nil
}
