package cli

import (
	"fmt"
	"time"

	"github.com/gosuri/uitable"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

const promptWidth = 40

func (a *App) renderGallery(images []*domain.Image, community bool) {
	table := uitable.New()
	table.MaxColWidth = promptWidth
	table.Wrap = true
	if community {
		table.AddRow("ID", "BY", "LIKES", "PROMPT", "URL")
	} else {
		table.AddRow("ID", "VISIBILITY", "LIKES", "PROMPT", "URL")
	}
	for _, img := range images {
		likes := fmt.Sprint(img.Likes)
		if a.sess.Liked(img.ID) {
			likes += " *"
		}
		if community {
			table.AddRow(img.ID, img.Username, likes, img.Prompt, img.URL)
		} else {
			table.AddRow(img.ID, visibility(img.IsPublic), likes, img.Prompt, img.URL)
		}
	}
	fmt.Fprintln(a.out, table)
}

func (a *App) renderImage(img *domain.Image) {
	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true
	table.AddRow("ID:", img.ID)
	table.AddRow("Prompt:", img.Prompt)
	table.AddRow("Aspect:", img.AspectRatio)
	table.AddRow("Quality:", string(img.Quality))
	table.AddRow("Owner:", img.Username)
	table.AddRow("Visibility:", visibility(img.IsPublic))
	table.AddRow("URL:", img.URL)
	fmt.Fprintln(a.out, table)
}

func (a *App) renderProfile(u *domain.User) {
	table := uitable.New()
	table.MaxColWidth = 80
	table.AddRow("Username:", userColor.Sprint(u.Username))
	table.AddRow("ID:", u.ID)
	if u.Email != "" {
		table.AddRow("Email:", u.Email)
	}
	if u.Bio != "" {
		table.AddRow("Bio:", u.Bio)
	}
	table.AddRow("Avatar:", u.Avatar)
	table.AddRow("Images:", u.TotalImages)
	table.AddRow("Likes:", u.TotalLikes)
	if !u.CreatedAt.IsZero() {
		table.AddRow("Joined:", u.CreatedAt.Local().Format(time.DateOnly))
	}
	fmt.Fprintln(a.out, table)
}

func visibility(public bool) string {
	if public {
		return "public"
	}
	return "private"
}
