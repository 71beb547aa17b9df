package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pixelforge/image-studio/internal/client/session"
	"github.com/pixelforge/image-studio/internal/core/domain"
)

// Generate parses "[-a ratio] [-q quality] <prompt>" and runs one generation.
// Without a prompt argument the prompt is asked for interactively.
func (a *App) Generate(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	aspect := fs.StringP("aspect", "a", domain.DefaultAspectRatio, "aspect ratio, e.g. 1:1 or 16:9")
	quality := fs.StringP("quality", "q", string(domain.QualityStandard), "standard or high")
	if err := fs.Parse(args); err != nil {
		return a.usage("generate [-a 16:9] [-q high] <prompt>")
	}

	prompt := strings.Join(fs.Args(), " ")
	if prompt == "" {
		var err error
		if prompt, err = a.ask("Describe the image you want"); err != nil {
			return err
		}
	}
	if strings.TrimSpace(prompt) == "" {
		fmt.Fprintln(a.out, "Prompt is required")
		return errUsage
	}

	fmt.Fprintln(a.out, "Generating...")
	img, err := a.sess.Generate(ctx, prompt, *aspect, *quality)
	if img == nil {
		a.printErr(err)
		return err
	}
	a.printOK("Image ready: %s", img.URL)
	a.renderImage(img)
	if errors.Is(err, session.ErrNotSaved) {
		errColor.Fprintln(a.out, "The image was not saved to your gallery.")
		a.printErr(err)
		return err
	}
	if !a.hasProfile() {
		fmt.Fprintln(a.out, "Create a profile with 'signup' to keep your images.")
	}
	return nil
}

func (a *App) Community(ctx context.Context) error {
	if err := a.sess.RefreshCommunity(ctx); err != nil {
		a.printErr(err)
		return err
	}
	images := a.sess.State().CommunityImages
	if len(images) == 0 {
		fmt.Fprintln(a.out, "No public images yet.")
		return nil
	}
	a.renderGallery(images, true)
	return nil
}

func (a *App) Mine(ctx context.Context) error {
	if !a.hasProfile() {
		fmt.Fprintln(a.out, "Create a profile with 'signup' to see your images.")
		return nil
	}
	if err := a.sess.RefreshMine(ctx); err != nil {
		a.printErr(err)
		return err
	}
	images := a.sess.State().UserImages
	if len(images) == 0 {
		fmt.Fprintln(a.out, "You have no images yet.")
		return nil
	}
	a.renderGallery(images, false)
	return nil
}

func (a *App) Like(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("like <image-id>")
	}
	likes, err := a.sess.Like(ctx, args[0])
	if err != nil {
		a.printErr(err)
		return err
	}
	a.printOK("Liked %s (%d likes)", args[0], likes)
	return nil
}

func (a *App) Share(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("share <image-id>")
	}
	public, err := a.sess.TogglePublic(ctx, args[0])
	if err != nil {
		a.printErr(err)
		return err
	}
	if public {
		a.printOK("%s is now public", args[0])
	} else {
		a.printOK("%s is now private", args[0])
	}
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("delete <image-id>")
	}
	if !a.confirm(fmt.Sprintf("Delete image %s?", args[0])) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.sess.Delete(ctx, args[0]); err != nil {
		a.printErr(err)
		return err
	}
	a.printOK("Deleted %s", args[0])
	return nil
}

func (a *App) Profile(context.Context) error {
	u := a.sess.State().CurrentUser
	if u == nil {
		fmt.Fprintln(a.out, "No profile. Create one with 'signup'.")
		return nil
	}
	a.renderProfile(u)
	return nil
}

// Signup asks for a username and an optional email and creates the profile.
func (a *App) Signup(ctx context.Context) error {
	if a.hasProfile() {
		fmt.Fprintln(a.out, "A profile is already active. Use 'logout' first.")
		return nil
	}
	username, err := a.ask("Username")
	if err != nil {
		return err
	}
	if username == "" {
		fmt.Fprintln(a.out, "Username is required")
		return errUsage
	}
	email, err := a.ask("Email (optional)")
	if err != nil {
		return err
	}

	u, err := a.sess.CreateProfile(ctx, username, email)
	if err != nil {
		a.printErr(err)
		return err
	}
	a.printOK("Welcome, %s!", u.Username)
	return nil
}

// Edit asks for new bio, email and avatar values. Blank answers keep the
// current value.
func (a *App) Edit(ctx context.Context) error {
	u := a.sess.State().CurrentUser
	if u == nil {
		fmt.Fprintln(a.out, "Create a profile with 'signup' first.")
		return nil
	}

	updates := make(map[string]any)
	fields := []struct{ key, label, current string }{
		{"bio", "Bio", u.Bio},
		{"email", "Email", u.Email},
		{"avatar", "Avatar URL", u.Avatar},
	}
	for _, f := range fields {
		v, err := a.ask(fmt.Sprintf("%s [%s]", f.label, f.current))
		if err != nil {
			return err
		}
		if v != "" && v != f.current {
			updates[f.key] = v
		}
	}
	if len(updates) == 0 {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	if _, err := a.sess.UpdateProfile(ctx, updates); err != nil {
		a.printErr(err)
		return err
	}
	a.printOK("Profile updated")
	return nil
}

func (a *App) Logout(context.Context) error {
	if err := a.sess.SignOut(); err != nil {
		a.printErr(err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) Dismiss(context.Context) error {
	a.sess.DismissError()
	return nil
}
